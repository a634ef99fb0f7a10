package eclipse

import (
	"fmt"

	"github.com/litescript/ls-eclipses/internal/astro"
	"github.com/litescript/ls-eclipses/internal/ephem"
)

// SolarVisibilityThreshold is the minimum obscured fraction of the Sun's
// disk for a solar eclipse to count as visible. It excludes numerically
// negligible partial coverage, not atmospheric or horizon effects.
const SolarVisibilityThreshold = 0.001

// Result is the outcome of one (event, site) visibility query.
type Result struct {
	Visible   bool
	Magnitude float64
}

// Checker evaluates per-site visibility through an ephemeris provider.
// One policy per kind:
//
//	solar: obscured fraction above SolarVisibilityThreshold
//	lunar: Moon above the local horizon at greatest eclipse
type Checker struct {
	Provider ephem.Provider
}

// Check reports whether an eclipse is observable from a site.
func (c Checker) Check(ev ephem.Event, obs astro.Observer) (Result, error) {
	switch ev.Kind {
	case ephem.KindSolar:
		cir, err := c.Provider.SolarCircumstances(ev.JD, obs)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Visible:   cir.FractionCovered > SolarVisibilityThreshold,
			Magnitude: cir.Magnitude,
		}, nil

	case ephem.KindLunar:
		alt, err := c.Provider.MoonAltitude(ev.JD, obs)
		if err != nil {
			return Result{}, err
		}
		// An eclipsed Moon is visible from the whole night hemisphere;
		// being above the horizon is the entire test.
		return Result{
			Visible:   alt > 0,
			Magnitude: ev.Magnitude,
		}, nil

	default:
		return Result{}, fmt.Errorf("eclipse: unhandled kind %v", ev.Kind)
	}
}
