package astro

import "math"

// MoonPos holds the apparent geocentric position of the Moon.
type MoonPos struct {
	LonDeg      float64 // Apparent ecliptic longitude in degrees
	LatDeg      float64 // Ecliptic latitude in degrees
	DistKm      float64 // Distance in kilometers
	RAdeg       float64 // Right Ascension in degrees (0-360)
	DecDeg      float64 // Declination in degrees
	ParallaxDeg float64 // Equatorial horizontal parallax in degrees
	SemiDeg     float64 // Apparent semidiameter in degrees
}

// periodicTerm is one row of the truncated ELP-2000/82 series:
// multiples of the fundamental arguments D, M, M', F and the coefficients
// for longitude (1e-6 deg) and distance (1e-3 km).
type periodicTerm struct {
	d, m, mp, f int
	l, r        float64
}

// Principal longitude/distance terms (Meeus, Astronomical Algorithms, ch. 47).
// Truncated to the terms above ~4e-3 deg; adequate for horizon tests and
// eclipse separations at the ~0.05 deg level.
var moonLRTerms = []periodicTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
	{0, 1, -2, 0, -2689, -7003},
	{2, 0, -1, 2, -2602, 0},
	{2, -1, -2, 0, 2390, 10056},
	{1, 0, 1, 0, -2348, 6322},
	{2, -2, 0, 0, 2236, -9884},
}

// latTerm is one row of the latitude series (coefficient in 1e-6 deg).
type latTerm struct {
	d, m, mp, f int
	b           float64
}

var moonBTerms = []latTerm{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
	{0, 0, 2, 1, 17198},
	{2, 0, 1, -1, 9266},
	{0, 0, 2, -1, 8822},
	{2, -1, 0, -1, 8216},
	{2, 0, -2, -1, 4324},
	{2, 0, 1, 1, 4200},
	{2, 1, 0, -1, -3359},
	{2, -1, -1, 1, 2463},
	{2, -1, 0, 1, 2211},
	{2, -1, -1, -1, 2065},
	{0, 1, -1, -1, -1870},
	{4, 0, -1, -1, 1828},
	{0, 1, 0, 1, -1794},
}

// Moon calculates the apparent geocentric position of the Moon for a TT
// instant using a truncated ELP-2000 series.
func Moon(jde JulianDay) MoonPos {
	T := jde.Centuries()

	// Fundamental arguments (degrees)
	Lp := normalizeAngle360(218.3164477 + 481267.88123421*T -
		0.0015786*T*T + T*T*T/538841 - T*T*T*T/65194000)
	D := normalizeAngle360(297.8501921 + 445267.1114034*T -
		0.0018819*T*T + T*T*T/545868 - T*T*T*T/113065000)
	M := normalizeAngle360(357.5291092 + 35999.0502909*T -
		0.0001536*T*T + T*T*T/24490000)
	Mp := normalizeAngle360(134.9633964 + 477198.8675055*T +
		0.0087414*T*T + T*T*T/69699 - T*T*T*T/14712000)
	F := normalizeAngle360(93.2720950 + 483202.0175233*T -
		0.0036539*T*T - T*T*T/3526000 + T*T*T*T/863310000)

	// Eccentricity damping for terms involving the solar anomaly
	E := 1 - 0.002516*T - 0.0000074*T*T

	var sumL, sumR float64
	for _, t := range moonLRTerms {
		arg := degToRad(float64(t.d)*D + float64(t.m)*M + float64(t.mp)*Mp + float64(t.f)*F)
		scale := 1.0
		if t.m == 1 || t.m == -1 {
			scale = E
		} else if t.m == 2 || t.m == -2 {
			scale = E * E
		}
		sumL += t.l * scale * math.Sin(arg)
		sumR += t.r * scale * math.Cos(arg)
	}

	var sumB float64
	for _, t := range moonBTerms {
		arg := degToRad(float64(t.d)*D + float64(t.m)*M + float64(t.mp)*Mp + float64(t.f)*F)
		scale := 1.0
		if t.m == 1 || t.m == -1 {
			scale = E
		} else if t.m == 2 || t.m == -2 {
			scale = E * E
		}
		sumB += t.b * scale * math.Sin(arg)
	}

	// Additive terms for Venus (A1), Jupiter (A2) and flattening effects
	A1 := normalizeAngle360(119.75 + 131.849*T)
	A2 := normalizeAngle360(53.09 + 479264.290*T)
	A3 := normalizeAngle360(313.45 + 481266.484*T)

	sumL += 3958*math.Sin(degToRad(A1)) +
		1962*math.Sin(degToRad(Lp-F)) +
		318*math.Sin(degToRad(A2))
	sumB += -2235*math.Sin(degToRad(Lp)) +
		382*math.Sin(degToRad(A3)) +
		175*math.Sin(degToRad(A1-F)) +
		175*math.Sin(degToRad(A1+F)) +
		127*math.Sin(degToRad(Lp-Mp)) -
		115*math.Sin(degToRad(Lp+Mp))

	lon := normalizeAngle360(Lp + sumL/1e6)
	lat := sumB / 1e6
	dist := 385000.56 + sumR/1e3

	ra, dec := EclipticToEquatorial(lon, lat, jde)

	parallax := radToDeg(math.Asin(6378.14 / dist))

	return MoonPos{
		LonDeg:      lon,
		LatDeg:      lat,
		DistKm:      dist,
		RAdeg:       ra,
		DecDeg:      dec,
		ParallaxDeg: parallax,
		SemiDeg:     0.272481 * parallax, // k = lunar/terrestrial radius ratio
	}
}
