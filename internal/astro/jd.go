// Package astro provides the astronomical math behind the eclipse search:
// time scales, solar and lunar positions, and coordinate transformations.
package astro

import "math"

// JulianDay is a continuous time coordinate: day count since the Julian
// epoch, fractional part = time of day (UT unless a function states TT).
// Calendar conversions use the proleptic Gregorian calendar with
// astronomical year numbering (year 0 exists, year -3099 = 3100 BC).
type JulianDay float64

// J2000 is the standard epoch 2000 January 1.5.
const J2000 JulianDay = 2451545.0

// DaysPerCentury is the length of a Julian century in days.
const DaysPerCentury = 36525.0

// AddDays returns the instant d days after jd.
func (jd JulianDay) AddDays(d float64) JulianDay {
	return jd + JulianDay(d)
}

// Sub returns jd - other in days.
func (jd JulianDay) Sub(other JulianDay) float64 {
	return float64(jd - other)
}

// Centuries returns Julian centuries elapsed since J2000.0.
func (jd JulianDay) Centuries() float64 {
	return float64(jd-J2000) / DaysPerCentury
}

// Year returns the approximate decimal calendar year of jd, good enough
// for slowly-varying quantities like delta-T.
func (jd JulianDay) Year() float64 {
	return 2000.0 + float64(jd-J2000)/365.25
}

// CalendarToJD converts a proleptic Gregorian calendar date to a Julian Day.
// hour is the fractional hour of day in [0, 24). Works for negative years.
func CalendarToJD(year, month, day int, hour float64) JulianDay {
	a := floorDiv(14-month, 12)
	y := year + 4800 - a
	m := month + 12*a - 3

	jdn := day + floorDiv(153*m+2, 5) + 365*y +
		floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045

	return JulianDay(float64(jdn) + (hour-12)/24)
}

// JDToCalendar converts a Julian Day back to a proleptic Gregorian calendar
// date with a fractional hour of day. Inverse of CalendarToJD for any year,
// BC included.
func JDToCalendar(jd JulianDay) (year, month, day int, hour float64) {
	z := math.Floor(float64(jd) + 0.5)
	f := float64(jd) + 0.5 - z

	// Days since 1970-01-01, shifted to the 400-year cycle epoch 0000-03-01.
	days := int(z) - 2440588 + 719468

	era := floorDiv(days, 146097)
	doe := days - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153

	day = doy - (153*mp+2)/5 + 1
	year = yoe + era*400
	if mp < 10 {
		month = mp + 3
	} else {
		month = mp - 9
		year++
	}

	return year, month, day, f * 24
}

// floorDiv is integer division rounding toward negative infinity,
// needed because calendar algorithms assume mathematical floor division.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// GreenwichSiderealTime returns GMST in degrees for a UT instant.
// IAU 1982 formula.
func GreenwichSiderealTime(jd JulianDay) float64 {
	d := float64(jd - J2000)
	T := jd.Centuries()

	gmst := 280.46061837 +
		360.98564736629*d +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// LocalSiderealTime returns LST in degrees for a UT instant and an
// east-positive longitude.
func LocalSiderealTime(jd JulianDay, lonDeg float64) float64 {
	return normalizeAngle360(GreenwichSiderealTime(jd) + lonDeg)
}
