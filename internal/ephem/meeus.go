package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-eclipses/internal/astro"
)

// Config controls a MeeusProvider instance. Configuration is explicit and
// per-instance; there is no package-wide state.
type Config struct {
	// MaxLunations bounds the forward search in NextEclipse. Each
	// lunation is ~29.53 days, so the default covers roughly four
	// centuries from the search start.
	MaxLunations int
}

// DefaultConfig returns the default provider configuration.
func DefaultConfig() Config {
	return Config{MaxLunations: 5000}
}

// MeeusProvider computes eclipses from the truncated lunation series in
// Meeus, Astronomical Algorithms (ch. 49 and 54), on top of the solar and
// lunar ephemerides in internal/astro. Self-contained: no data files.
type MeeusProvider struct {
	cfg Config
}

// NewMeeusProvider creates a provider with the given configuration.
func NewMeeusProvider(cfg Config) (*MeeusProvider, error) {
	if cfg.MaxLunations <= 0 {
		return nil, fmt.Errorf("ephem: MaxLunations must be positive, got %d", cfg.MaxLunations)
	}
	return &MeeusProvider{cfg: cfg}, nil
}

// Name implements Provider.
func (p *MeeusProvider) Name() string {
	return "meeus"
}

// lunation holds the arguments of one mean new or full moon.
type lunation struct {
	jdeMean astro.JulianDay // mean phase time, TT
	T       float64         // Julian centuries at the phase
	e       float64         // eccentricity damping factor
	m       float64         // solar mean anomaly, radians
	mp      float64         // lunar mean anomaly, radians
	f       float64         // argument of latitude, radians
	f1      float64         // F corrected for nodal motion, radians
	omega   float64         // longitude of ascending node, radians
	a1      float64         // Venus perturbation argument, radians
}

// lunationAt evaluates the mean-phase series for lunation number k.
// Integer k = new moon (solar candidate), k+0.5 = full moon (lunar).
func lunationAt(k float64) lunation {
	T := k / 1236.85

	jde := 2451550.09766 + 29.530588861*k +
		T*T*(0.00015437+T*(-0.000000150+T*0.00000000073))

	e := 1 - 0.002516*T - 0.0000074*T*T

	m := deg2rad(2.5534 + 29.10535670*k - T*T*(0.0000014+0.00000011*T))
	mp := deg2rad(201.5643 + 385.81693528*k +
		T*T*(0.0107582+T*(0.00001238-T*0.000000058)))
	f := deg2rad(160.7108 + 390.67050284*k -
		T*T*(0.0016118+T*(0.00000227-T*0.000000011)))
	omega := deg2rad(124.7746 - 1.56375588*k + T*T*(0.0020672+0.00000215*T))
	a1 := deg2rad(299.77 + 0.107408*k - 0.009173*T*T)

	return lunation{
		jdeMean: astro.JulianDay(jde),
		T:       T,
		e:       e,
		m:       m,
		mp:      mp,
		f:       f,
		f1:      f - deg2rad(0.02665)*math.Sin(omega),
		omega:   omega,
		a1:      a1,
	}
}

// maxEclipseTime applies the greatest-eclipse time corrections to the mean
// phase time. The leading coefficients differ between new and full moon.
func (l lunation) maxEclipseTime(kind Kind) astro.JulianDay {
	c0, c1 := -0.4075, 0.1721
	if kind == KindLunar {
		c0, c1 = -0.4065, 0.1727
	}

	corr := c0*math.Sin(l.mp) +
		c1*l.e*math.Sin(l.m) +
		0.0161*math.Sin(2*l.mp) -
		0.0097*math.Sin(2*l.f1) +
		0.0073*l.e*math.Sin(l.mp-l.m) -
		0.0050*l.e*math.Sin(l.mp+l.m) -
		0.0023*math.Sin(l.mp-2*l.f1) +
		0.0021*l.e*math.Sin(2*l.m) +
		0.0012*math.Sin(l.mp+2*l.f1) +
		0.0006*l.e*math.Sin(2*l.mp+l.m) -
		0.0004*math.Sin(3*l.mp) -
		0.0003*l.e*math.Sin(l.m+2*l.f1) +
		0.0003*math.Sin(l.a1) -
		0.0002*l.e*math.Sin(l.m-2*l.f1) -
		0.0002*l.e*math.Sin(2*l.mp-l.m) -
		0.0002*math.Sin(l.omega)

	return l.jdeMean.AddDays(corr)
}

// shadowGeometry returns gamma (least axis distance, Earth radii) and u
// (umbral radius term) for the lunation.
func (l lunation) shadowGeometry() (gamma, u float64) {
	P := 0.2070*l.e*math.Sin(l.m) +
		0.0024*l.e*math.Sin(2*l.m) -
		0.0392*math.Sin(l.mp) +
		0.0116*math.Sin(2*l.mp) -
		0.0073*l.e*math.Sin(l.mp+l.m) +
		0.0067*l.e*math.Sin(l.mp-l.m) +
		0.0118*math.Sin(2*l.f1)

	Q := 5.2207 -
		0.0048*l.e*math.Cos(l.m) +
		0.0020*l.e*math.Cos(2*l.m) -
		0.3299*math.Cos(l.mp) -
		0.0060*l.e*math.Cos(l.mp+l.m) +
		0.0041*l.e*math.Cos(l.mp-l.m)

	W := math.Abs(math.Cos(l.f1))

	gamma = (P*math.Cos(l.f1) + Q*math.Sin(l.f1)) * (1 - 0.0048*W)

	u = 0.0059 +
		0.0046*l.e*math.Cos(l.m) -
		0.0182*math.Cos(l.mp) +
		0.0004*math.Cos(2*l.mp) -
		0.0005*math.Cos(l.m+l.mp)

	return gamma, u
}

// eclipseAt tests lunation k for an eclipse of the given kind and, when one
// occurs, builds the Event. The returned time is UT.
func eclipseAt(k float64, kind Kind) (Event, bool) {
	l := lunationAt(k)

	// No eclipse when the Moon is too far from a node.
	if math.Abs(math.Sin(l.f)) > 0.36 {
		return Event{}, false
	}

	gamma, u := l.shadowGeometry()
	absG := math.Abs(gamma)

	ev := Event{
		Kind:  kind,
		JD:    astro.TTToUT(l.maxEclipseTime(kind)),
		Gamma: gamma,
	}

	switch kind {
	case KindSolar:
		if absG > 1.5433+u {
			return Event{}, false
		}
		ev.Magnitude = (1.5433 + u - absG) / (0.5461 + 2*u)
		switch {
		case absG >= 0.9972:
			ev.Type = TypePartial
		case u < 0:
			ev.Type = TypeTotal
		case u > 0.0047:
			ev.Type = TypeAnnular
		default:
			ev.Type = TypeHybrid
		}
		ev.SubLatDeg, ev.SubLonDeg = solarSubPoint(ev.JD, gamma)

	case KindLunar:
		magUmbral := (1.0128 - u - absG) / 0.5450
		magPenumbral := (1.5573 + u - absG) / 0.5450
		if magPenumbral <= 0 {
			return Event{}, false
		}
		switch {
		case magUmbral >= 1:
			ev.Type = TypeTotal
			ev.Magnitude = magUmbral
		case magUmbral > 0:
			ev.Type = TypePartial
			ev.Magnitude = magUmbral
		default:
			ev.Type = TypePenumbral
			ev.Magnitude = magPenumbral
		}
	}

	return ev, true
}

// solarSubPoint estimates where on Earth the eclipse is greatest. The
// longitude comes from the Sun's hour angle at the time of maximum; the
// latitude offsets the subsolar latitude by the shadow-axis distance gamma.
// Good to a few degrees, which is all the report needs.
func solarSubPoint(jdUT astro.JulianDay, gamma float64) (latDeg, lonDeg float64) {
	sun := astro.Sun(astro.UTToTT(jdUT))

	lonDeg = sun.RAdeg - astro.GreenwichSiderealTime(jdUT)
	for lonDeg < -180 {
		lonDeg += 360
	}
	for lonDeg >= 180 {
		lonDeg -= 360
	}

	g := gamma
	if g < -1 {
		g = -1
	} else if g > 1 {
		g = 1
	}
	latDeg = sun.DecDeg + rad2deg(math.Asin(g))
	if latDeg > 90 {
		latDeg = 90
	} else if latDeg < -90 {
		latDeg = -90
	}

	return latDeg, lonDeg
}

// NextEclipse implements Provider. It walks lunations forward from the
// nearest new/full moon before 'after' until an eclipse lands strictly
// after it, bounded by cfg.MaxLunations.
func (p *MeeusProvider) NextEclipse(kind Kind, after astro.JulianDay) (Event, error) {
	// Approximate lunation number, backed up two cycles so rounding
	// error cannot skip an eclipse near 'after'.
	k := math.Floor((after.Year()-2000)*12.3685) - 2
	if kind == KindLunar {
		k += 0.5
	}

	for i := 0; i < p.cfg.MaxLunations; i++ {
		ev, ok := eclipseAt(k, kind)
		k++
		if !ok {
			continue
		}
		if ev.JD <= after {
			continue
		}
		return ev, nil
	}

	return Event{}, ErrNoEclipse
}

// SolarCircumstances implements Provider. The model is topocentric: the
// Moon's position is parallax-corrected for the site, then the obscured
// fraction follows from the disk overlap of Sun and Moon.
func (p *MeeusProvider) SolarCircumstances(jd astro.JulianDay, obs astro.Observer) (Circumstances, error) {
	jde := astro.UTToTT(jd)
	sun := astro.Sun(jde)
	moon := astro.Moon(jde)

	sunH := astro.EquatorialToHorizontal(
		astro.SkyCoord{RAdeg: sun.RAdeg, DecDeg: sun.DecDeg}, obs, jd)
	moonH := astro.EquatorialToHorizontal(
		astro.SkyCoord{RAdeg: moon.RAdeg, DecDeg: moon.DecDeg}, obs, jd)

	moonAlt := astro.TopocentricAltitude(moonH.ElDeg, moon.ParallaxDeg)

	// Sun entirely below the horizon: nothing to see, not an error.
	if sunH.ElDeg < -sun.SemiDeg {
		return Circumstances{SunAltDeg: sunH.ElDeg}, nil
	}

	sep := astro.AngularSeparation(sunH.AzDeg, sunH.ElDeg, moonH.AzDeg, moonAlt)

	mag := (sun.SemiDeg + moon.SemiDeg - sep) / (2 * sun.SemiDeg)
	if mag < 0 {
		mag = 0
	}

	c := Circumstances{
		FractionCovered: diskOverlapFraction(sun.SemiDeg, moon.SemiDeg, sep),
		Magnitude:       mag,
		SunAltDeg:       sunH.ElDeg,
	}

	if math.IsNaN(c.FractionCovered) || math.IsNaN(c.Magnitude) {
		return Circumstances{}, ErrBadGeometry
	}
	return c, nil
}

// MoonAltitude implements Provider.
func (p *MeeusProvider) MoonAltitude(jd astro.JulianDay, obs astro.Observer) (float64, error) {
	moon := astro.Moon(astro.UTToTT(jd))
	h := astro.EquatorialToHorizontal(
		astro.SkyCoord{RAdeg: moon.RAdeg, DecDeg: moon.DecDeg}, obs, jd)

	alt := astro.TopocentricAltitude(h.ElDeg, moon.ParallaxDeg)
	if math.IsNaN(alt) {
		return 0, ErrBadGeometry
	}
	return alt, nil
}

// diskOverlapFraction returns the fraction of the first disk's area covered
// by the second, for angular radii r1, r2 and center separation d (degrees).
func diskOverlapFraction(r1, r2, d float64) float64 {
	if d >= r1+r2 {
		return 0
	}
	if d <= math.Abs(r1-r2) {
		if r2 >= r1 {
			return 1
		}
		return (r2 * r2) / (r1 * r1)
	}

	d1 := (d*d + r1*r1 - r2*r2) / (2 * d)
	d2 := d - d1

	a1 := r1*r1*math.Acos(clampUnit(d1/r1)) - d1*math.Sqrt(math.Max(r1*r1-d1*d1, 0))
	a2 := r2*r2*math.Acos(clampUnit(d2/r2)) - d2*math.Sqrt(math.Max(r2*r2-d2*d2, 0))

	return (a1 + a2) / (math.Pi * r1 * r1)
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func deg2rad(deg float64) float64 { return deg * math.Pi / 180 }
func rad2deg(rad float64) float64 { return rad * 180 / math.Pi }
