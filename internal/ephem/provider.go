// Package ephem provides eclipse timing and local visibility attributes.
// A Provider answers three questions: when is the next eclipse of a kind,
// how much of the Sun is covered at a place and time, and how high the
// Moon stands there.
package ephem

import (
	"errors"
	"fmt"

	"github.com/litescript/ls-eclipses/internal/astro"
)

// Kind identifies the eclipse family.
type Kind int

const (
	KindSolar Kind = iota
	KindLunar
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSolar:
		return "solar"
	case KindLunar:
		return "lunar"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind string.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "solar":
		return KindSolar, nil
	case "lunar":
		return KindLunar, nil
	default:
		return 0, fmt.Errorf("unknown eclipse kind %q", s)
	}
}

// EclipseType classifies an eclipse within its kind.
type EclipseType int

const (
	TypeUnknown EclipseType = iota
	TypePartial
	TypeAnnular
	TypeTotal
	TypeHybrid
	TypePenumbral
)

// String returns the type name.
func (t EclipseType) String() string {
	switch t {
	case TypePartial:
		return "partial"
	case TypeAnnular:
		return "annular"
	case TypeTotal:
		return "total"
	case TypeHybrid:
		return "hybrid"
	case TypePenumbral:
		return "penumbral"
	default:
		return "unknown"
	}
}

// Event is one eclipse found by a Provider. Immutable once produced.
type Event struct {
	Kind Kind
	Type EclipseType

	// JD is the instant of greatest eclipse, UT.
	JD astro.JulianDay

	// Magnitude at greatest eclipse: fraction of the solar diameter
	// covered for solar eclipses, umbral (or penumbral) magnitude for
	// lunar ones.
	Magnitude float64

	// Gamma is the least distance of the shadow axis from the center of
	// the Earth, in Earth radii, north positive.
	Gamma float64

	// Approximate geographic sub-point of greatest eclipse.
	// Solar eclipses only; zero otherwise.
	SubLatDeg float64
	SubLonDeg float64
}

// Circumstances are the local attributes of a solar eclipse at one
// observing site.
type Circumstances struct {
	FractionCovered float64 // Fraction of the Sun's disk area obscured (0-1)
	Magnitude       float64 // Fraction of the solar diameter covered
	SunAltDeg       float64 // Altitude of the Sun above the local horizon
}

// Provider errors.
var (
	// ErrNoEclipse means no further eclipse was found within the
	// provider's search window. Callers treat it as end-of-sequence.
	ErrNoEclipse = errors.New("no eclipse found in search window")

	// ErrBadGeometry means a per-site query produced an unusable result.
	ErrBadGeometry = errors.New("visibility geometry did not converge")
)

// Provider is the ephemeris capability the search core depends on.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// NextEclipse returns the first eclipse of the given kind whose
	// greatest-eclipse time is strictly after the given UT instant.
	// Returns ErrNoEclipse when the search window is exhausted.
	NextEclipse(kind Kind, after astro.JulianDay) (Event, error)

	// SolarCircumstances returns the local circumstances of a solar
	// eclipse in progress at the given UT instant and site.
	SolarCircumstances(jd astro.JulianDay, obs astro.Observer) (Circumstances, error)

	// MoonAltitude returns the topocentric altitude of the Moon in
	// degrees at the given UT instant and site.
	MoonAltitude(jd astro.JulianDay, obs astro.Observer) (float64, error)
}
