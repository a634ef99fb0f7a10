package astro

import (
	"math"
	"testing"
)

func TestCalendarToJD_KnownDates(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		day   int
		hour  float64
		want  float64
	}{
		{"J2000 epoch", 2000, 1, 1, 12, 2451545.0},
		{"J2000 midnight", 2000, 1, 1, 0, 2451544.5},
		{"Sputnik era", 1957, 10, 4, 19.43, 2436116.30958},
		{"Gregorian reform day", 1582, 10, 15, 0, 2299160.5},
		{"year zero exists", 0, 1, 1, 0, 1721059.5},
		{"deep BC", -3099, 1, 1, 0, 589173.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := float64(CalendarToJD(tt.year, tt.month, tt.day, tt.hour))
			if math.Abs(got-tt.want) > 1e-4 {
				t.Errorf("CalendarToJD(%d,%d,%d,%.2f) = %.5f, want %.5f",
					tt.year, tt.month, tt.day, tt.hour, got, tt.want)
			}
		})
	}
}

func TestJDToCalendar_RoundTrip(t *testing.T) {
	// Sweep from the fifth millennium BC to the present in odd strides so
	// month and day boundaries get exercised.
	dates := []struct {
		year, month, day int
		hour             float64
	}{
		{-3099, 1, 1, 0},
		{-3099, 12, 31, 23.5},
		{-3000, 7, 15, 6.25},
		{-2999, 2, 28, 12},
		{-1, 3, 1, 18},
		{0, 2, 29, 0}, // year 0 is a leap year in astronomical numbering
		{1000, 10, 31, 9.75},
		{2024, 4, 8, 18.3},
	}

	for _, d := range dates {
		jd := CalendarToJD(d.year, d.month, d.day, d.hour)
		y, m, day, h := JDToCalendar(jd)

		if y != d.year || m != d.month || day != d.day {
			t.Errorf("round trip (%d,%d,%d) -> JD %.5f -> (%d,%d,%d)",
				d.year, d.month, d.day, float64(jd), y, m, day)
		}
		if math.Abs(h-d.hour) > 1e-6 {
			t.Errorf("round trip hour %.4f -> %.4f for %d-%02d-%02d",
				d.hour, h, d.year, d.month, d.day)
		}
	}
}

func TestJDToCalendar_DayBoundary(t *testing.T) {
	// JD .5 fraction is calendar midnight; integer JD is noon.
	y, m, d, h := JDToCalendar(2451544.5)
	if y != 2000 || m != 1 || d != 1 || h != 0 {
		t.Errorf("JD 2451544.5 = %d-%02d-%02d %.2fh, want 2000-01-01 0h", y, m, d, h)
	}

	y, m, d, h = JDToCalendar(2451545.0)
	if y != 2000 || m != 1 || d != 1 || math.Abs(h-12) > 1e-9 {
		t.Errorf("JD 2451545.0 = %d-%02d-%02d %.2fh, want 2000-01-01 12h", y, m, d, h)
	}
}

func TestJulianDay_Arithmetic(t *testing.T) {
	a := CalendarToJD(2024, 1, 1, 0)
	b := a.AddDays(15.25)

	if gap := b.Sub(a); math.Abs(gap-15.25) > 1e-9 {
		t.Errorf("Sub after AddDays = %.6f, want 15.25", gap)
	}
	if c := J2000.Centuries(); c != 0 {
		t.Errorf("J2000.Centuries() = %v, want 0", c)
	}
	if y := J2000.Year(); math.Abs(y-2000) > 0.01 {
		t.Errorf("J2000.Year() = %.4f, want ~2000", y)
	}
}

func TestGreenwichSiderealTime(t *testing.T) {
	// Meeus example 12.b: 1987 April 10, 19h21m00s UT.
	jd := CalendarToJD(1987, 4, 10, 19.35)
	got := GreenwichSiderealTime(jd)
	want := 128.7378734

	if math.Abs(got-want) > 0.01 {
		t.Errorf("GreenwichSiderealTime = %.4f°, want %.4f°", got, want)
	}

	// LST east of Greenwich leads GMST.
	lst := LocalSiderealTime(jd, 45)
	if math.Abs(normalizeAngle360(lst-got)-45) > 1e-9 {
		t.Errorf("LocalSiderealTime offset = %.4f°, want 45°", normalizeAngle360(lst-got))
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{7, 2, 3},
		{-7, 2, -4},
		{-8, 2, -4},
		{7, -2, -4},
		{0, 5, 0},
	}
	for _, tt := range tests {
		if got := floorDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("floorDiv(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
