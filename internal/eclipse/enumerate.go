// Package eclipse implements the eclipse-pair search: enumerate eclipses
// over a date range, pair events within a gap threshold, and test joint
// visibility over a set of ground sites.
package eclipse

import (
	"errors"

	"github.com/litescript/ls-eclipses/internal/astro"
	"github.com/litescript/ls-eclipses/internal/ephem"
)

// GuardDays is added to the cursor after each found event so the provider
// cannot return the same eclipse twice. One day is safe: no eclipse kind
// recurs within 24 hours.
const GuardDays = 1.0

// ErrOracleStalled means the provider returned a non-advancing eclipse time
// or produced more events than the range can physically hold.
var ErrOracleStalled = errors.New("ephemeris provider stopped advancing")

// Enumerate walks forward from start, collecting every eclipse of the given
// kind with greatest-eclipse time in [start, end). The returned events are
// strictly increasing in time.
//
// ephem.ErrNoEclipse from the provider is normal end-of-sequence. The walk
// is additionally capped at the maximum number of eclipses the range can
// hold (well under eight per year per kind), so a misbehaving provider
// cannot loop forever.
func Enumerate(p ephem.Provider, kind ephem.Kind, start, end astro.JulianDay) ([]ephem.Event, error) {
	if end <= start {
		return nil, nil
	}

	maxIter := int(end.Sub(start)/365.25*8) + 16

	var events []ephem.Event
	cursor := start

	for i := 0; i < maxIter; i++ {
		ev, err := p.NextEclipse(kind, cursor)
		if errors.Is(err, ephem.ErrNoEclipse) {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		if ev.JD >= end {
			return events, nil
		}
		if ev.JD <= cursor {
			return events, ErrOracleStalled
		}

		events = append(events, ev)
		cursor = ev.JD.AddDays(GuardDays)
	}

	return events, ErrOracleStalled
}

// MergeByTime merges two time-sorted event lists into one time-sorted list.
// The merge is stable: on equal times (astronomically impossible across
// kinds, but the ordering must stay deterministic) events from the first
// list come first.
func MergeByTime(a, b []ephem.Event) []ephem.Event {
	merged := make([]ephem.Event, 0, len(a)+len(b))

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j].JD < a[i].JD {
			merged = append(merged, b[j])
			j++
		} else {
			merged = append(merged, a[i])
			i++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)

	return merged
}
