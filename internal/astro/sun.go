package astro

import "math"

// SunPosition holds the apparent geocentric position of the Sun.
type SunPosition struct {
	LonDeg  float64 // Apparent ecliptic longitude in degrees
	RAdeg   float64 // Right Ascension in degrees (0-360)
	DecDeg  float64 // Declination in degrees
	DistAU  float64 // Distance in astronomical units
	SemiDeg float64 // Apparent semidiameter in degrees
}

// Sun calculates the apparent position of the Sun for a TT instant.
// Uses a simplified solar ephemeris based on the Astronomical Almanac.
// Accuracy: ~0.01 degrees in longitude, degrading slowly for remote epochs.
func Sun(jde JulianDay) SunPosition {
	T := jde.Centuries()

	// Mean longitude of the Sun (degrees)
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)

	// Mean anomaly of the Sun (degrees)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Eccentricity of Earth's orbit
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T

	// Sun's equation of center (degrees)
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	// True longitude and anomaly (degrees)
	sunLon := L0 + C
	v := M + C

	// Radius vector (AU)
	R := (1.000001018 * (1 - e*e)) / (1 + e*math.Cos(degToRad(v)))

	// Apparent longitude (correcting for aberration and nutation)
	omega := 125.04 - 1934.136*T
	sunLonApp := sunLon - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	// Corrected obliquity
	eps := meanObliquity(T) + 0.00256*math.Cos(degToRad(omega))

	ra, dec := eclipticToEquatorial(sunLonApp, 0, eps)

	return SunPosition{
		LonDeg:  normalizeAngle360(sunLonApp),
		RAdeg:   ra,
		DecDeg:  dec,
		DistAU:  R,
		SemiDeg: 0.26667 / R, // 959.63" at 1 AU
	}
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees
// for Julian centuries T since J2000.0.
func meanObliquity(T float64) float64 {
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// eclipticToEquatorial converts ecliptic longitude/latitude to RA/Dec,
// all in degrees, given the obliquity eps in degrees.
func eclipticToEquatorial(lonDeg, latDeg, epsDeg float64) (raDeg, decDeg float64) {
	lon := degToRad(lonDeg)
	lat := degToRad(latDeg)
	eps := degToRad(epsDeg)

	ra := math.Atan2(
		math.Sin(lon)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps),
		math.Cos(lon))
	dec := math.Asin(math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon))

	raDeg = radToDeg(ra)
	if raDeg < 0 {
		raDeg += 360
	}
	return raDeg, radToDeg(dec)
}

// EclipticToEquatorial converts ecliptic coordinates to equatorial ones
// using the mean obliquity at the given TT instant. All angles in degrees.
func EclipticToEquatorial(lonDeg, latDeg float64, jde JulianDay) (raDeg, decDeg float64) {
	return eclipticToEquatorial(lonDeg, latDeg, meanObliquity(jde.Centuries()))
}

// AngularSeparation calculates the angular separation between two points on
// the celestial sphere. All coordinates in degrees. Returns separation in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	ra1Rad := degToRad(ra1)
	dec1Rad := degToRad(dec1)
	ra2Rad := degToRad(ra2)
	dec2Rad := degToRad(dec2)

	// Haversine formula for angular separation
	dRA := ra2Rad - ra1Rad
	dDec := dec2Rad - dec1Rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1Rad)*math.Cos(dec2Rad)*math.Sin(dRA/2)*math.Sin(dRA/2)

	// Clamp to avoid numerical errors with asin
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// normalizeAngle360 normalizes an angle to 0-360 degrees.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
