package ephem

import (
	"errors"
	"math"
	"testing"

	"github.com/litescript/ls-eclipses/internal/astro"
)

func newTestProvider(t *testing.T) *MeeusProvider {
	t.Helper()
	p, err := NewMeeusProvider(DefaultConfig())
	if err != nil {
		t.Fatalf("NewMeeusProvider: %v", err)
	}
	return p
}

func TestNewMeeusProvider_Config(t *testing.T) {
	if _, err := NewMeeusProvider(Config{MaxLunations: 0}); err == nil {
		t.Error("expected error for MaxLunations = 0")
	}
	if _, err := NewMeeusProvider(Config{MaxLunations: -5}); err == nil {
		t.Error("expected error for negative MaxLunations")
	}
	p, err := NewMeeusProvider(Config{MaxLunations: 100})
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if p.Name() != "meeus" {
		t.Errorf("Name() = %q, want meeus", p.Name())
	}
}

func TestNextEclipse_Solar1993(t *testing.T) {
	// Meeus example 54.a: the partial solar eclipse of 1993 May 21.
	p := newTestProvider(t)

	ev, err := p.NextEclipse(KindSolar, astro.CalendarToJD(1993, 1, 1, 0))
	if err != nil {
		t.Fatalf("NextEclipse: %v", err)
	}

	y, m, d, _ := astro.JDToCalendar(ev.JD)
	if y != 1993 || m != 5 || d != 21 {
		t.Fatalf("eclipse date = %d-%02d-%02d, want 1993-05-21", y, m, d)
	}
	if ev.Type != TypePartial {
		t.Errorf("type = %s, want partial", ev.Type)
	}
	if math.Abs(ev.Gamma-1.1348) > 0.005 {
		t.Errorf("gamma = %.4f, want ~1.1348", ev.Gamma)
	}
	if math.Abs(ev.Magnitude-0.740) > 0.02 {
		t.Errorf("magnitude = %.4f, want ~0.740", ev.Magnitude)
	}
}

func TestNextEclipse_Lunar2019(t *testing.T) {
	// Total lunar eclipse of 2019 January 21, umbral magnitude 1.195.
	p := newTestProvider(t)

	ev, err := p.NextEclipse(KindLunar, astro.CalendarToJD(2019, 1, 1, 0))
	if err != nil {
		t.Fatalf("NextEclipse: %v", err)
	}

	y, m, d, _ := astro.JDToCalendar(ev.JD)
	if y != 2019 || m != 1 || d != 21 {
		t.Fatalf("eclipse date = %d-%02d-%02d, want 2019-01-21", y, m, d)
	}
	if ev.Type != TypeTotal {
		t.Errorf("type = %s, want total", ev.Type)
	}
	if math.Abs(ev.Magnitude-1.195) > 0.05 {
		t.Errorf("magnitude = %.4f, want ~1.195", ev.Magnitude)
	}
}

func TestNextEclipse_StrictlyAfter(t *testing.T) {
	p := newTestProvider(t)
	after := astro.CalendarToJD(2019, 1, 1, 0)

	ev, err := p.NextEclipse(KindLunar, after)
	if err != nil {
		t.Fatalf("NextEclipse: %v", err)
	}

	// Asking again from the found time must return a later eclipse.
	next, err := p.NextEclipse(KindLunar, ev.JD)
	if err != nil {
		t.Fatalf("NextEclipse after first: %v", err)
	}
	if next.JD <= ev.JD {
		t.Errorf("second eclipse %.4f not after first %.4f", float64(next.JD), float64(ev.JD))
	}
}

func TestNextEclipse_WindowExhausted(t *testing.T) {
	// A handful of lunations from a quiet start may contain no eclipse.
	p, err := NewMeeusProvider(Config{MaxLunations: 1})
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.NextEclipse(KindSolar, astro.CalendarToJD(2019, 2, 1, 0))
	if !errors.Is(err, ErrNoEclipse) {
		t.Errorf("got %v, want ErrNoEclipse", err)
	}
}

func TestNextEclipse_DeepBC(t *testing.T) {
	// The series must keep producing plausible events five millennia back:
	// each year sees between 2 and 5 solar eclipses.
	p := newTestProvider(t)

	start := astro.CalendarToJD(-3099, 1, 1, 0)
	end := start.AddDays(365.25)

	count := 0
	cursor := start
	for {
		ev, err := p.NextEclipse(KindSolar, cursor)
		if err != nil {
			t.Fatalf("NextEclipse: %v", err)
		}
		if ev.JD >= end {
			break
		}
		if ev.Magnitude <= 0 {
			t.Errorf("non-positive magnitude %.4f at JD %.2f", ev.Magnitude, float64(ev.JD))
		}
		count++
		cursor = ev.JD
	}

	if count < 2 || count > 5 {
		t.Errorf("found %d solar eclipses in one BC year, want 2..5", count)
	}
}

func TestSolarCircumstances_2024April8(t *testing.T) {
	p := newTestProvider(t)

	ev, err := p.NextEclipse(KindSolar, astro.CalendarToJD(2024, 4, 1, 0))
	if err != nil {
		t.Fatalf("NextEclipse: %v", err)
	}
	if ev.Type != TypeTotal {
		t.Fatalf("2024 April 8 type = %s, want total", ev.Type)
	}

	// Inside the path across Mexico: deep obscuration, Sun well up.
	inPath := astro.Observer{LatDeg: 25.3, LonDeg: -104.6}
	c, err := p.SolarCircumstances(ev.JD, inPath)
	if err != nil {
		t.Fatalf("SolarCircumstances: %v", err)
	}
	if c.FractionCovered < 0.5 {
		t.Errorf("in-path fraction = %.3f, want > 0.5", c.FractionCovered)
	}
	if c.SunAltDeg < 10 {
		t.Errorf("in-path Sun altitude = %.2f°, want well above horizon", c.SunAltDeg)
	}

	// Night side of the planet: the Sun is down, nothing obscured.
	nightSide := astro.Observer{LatDeg: -25, LonDeg: 135}
	c, err = p.SolarCircumstances(ev.JD, nightSide)
	if err != nil {
		t.Fatalf("SolarCircumstances (night): %v", err)
	}
	if c.SunAltDeg >= 0 {
		t.Errorf("night-side Sun altitude = %.2f°, want negative", c.SunAltDeg)
	}
	if c.FractionCovered != 0 {
		t.Errorf("night-side fraction = %.3f, want 0", c.FractionCovered)
	}
}

func TestMoonAltitude_2019January21(t *testing.T) {
	p := newTestProvider(t)

	// Mid-totality of the 2019 January lunar eclipse, ~05:12 UT.
	jd := astro.CalendarToJD(2019, 1, 21, 5.2)

	// Eastern North America had the Moon high in the sky.
	alt, err := p.MoonAltitude(jd, astro.Observer{LatDeg: 40, LonDeg: -75})
	if err != nil {
		t.Fatalf("MoonAltitude: %v", err)
	}
	if alt <= 0 {
		t.Errorf("Moon altitude over eastern NA = %.2f°, want positive", alt)
	}

	// Central China had the Moon below the horizon.
	alt, err = p.MoonAltitude(jd, astro.Observer{LatDeg: 35, LonDeg: 105})
	if err != nil {
		t.Fatalf("MoonAltitude: %v", err)
	}
	if alt >= 0 {
		t.Errorf("Moon altitude over China = %.2f°, want negative", alt)
	}
}

func TestDiskOverlapFraction(t *testing.T) {
	tests := []struct {
		name       string
		r1, r2, d  float64
		want       float64
		tol        float64
	}{
		{"disjoint", 0.25, 0.25, 1.0, 0, 0},
		{"touching", 0.25, 0.25, 0.5, 0, 1e-9},
		{"concentric equal", 0.25, 0.25, 0, 1, 0},
		{"larger covers smaller", 0.25, 0.30, 0.01, 1, 0},
		{"smaller inside larger", 0.30, 0.25, 0.01, 0.25 * 0.25 / (0.30 * 0.30), 1e-9},
		{"half offset equal disks", 1, 1, 1, 0.391, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diskOverlapFraction(tt.r1, tt.r2, tt.d)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("diskOverlapFraction(%.2f, %.2f, %.2f) = %.4f, want %.4f",
					tt.r1, tt.r2, tt.d, got, tt.want)
			}
		})
	}

	// Monotone in separation while the disks overlap.
	prev := 1.0
	for d := 0.0; d < 0.5; d += 0.05 {
		f := diskOverlapFraction(0.25, 0.25, d)
		if f > prev+1e-12 {
			t.Errorf("overlap fraction rose from %.4f to %.4f at d=%.2f", prev, f, d)
		}
		prev = f
	}
}

func TestSolarSubPoint_Bounds(t *testing.T) {
	lat, lon := solarSubPoint(astro.CalendarToJD(2024, 4, 8, 18.3), 0.34)
	if lat < -90 || lat > 90 {
		t.Errorf("sub-point latitude %.2f out of range", lat)
	}
	if lon < -180 || lon >= 180 {
		t.Errorf("sub-point longitude %.2f out of range", lon)
	}
	// Greatest eclipse of 2024 April 8 fell over central Mexico.
	if lat < 10 || lat > 40 {
		t.Errorf("sub-point latitude %.2f, want roughly 10..40", lat)
	}
	if lon < -130 || lon > -70 {
		t.Errorf("sub-point longitude %.2f, want roughly -130..-70", lon)
	}
}

func TestKindAndTypeStrings(t *testing.T) {
	if KindSolar.String() != "solar" || KindLunar.String() != "lunar" {
		t.Error("Kind.String mismatch")
	}
	if _, err := ParseKind("annular"); err == nil {
		t.Error("ParseKind accepted a type name as a kind")
	}
	k, err := ParseKind("lunar")
	if err != nil || k != KindLunar {
		t.Errorf("ParseKind(lunar) = %v, %v", k, err)
	}
	for ty, want := range map[EclipseType]string{
		TypePartial: "partial", TypeAnnular: "annular", TypeTotal: "total",
		TypeHybrid: "hybrid", TypePenumbral: "penumbral", TypeUnknown: "unknown",
	} {
		if ty.String() != want {
			t.Errorf("EclipseType(%d).String() = %q, want %q", ty, ty.String(), want)
		}
	}
}
