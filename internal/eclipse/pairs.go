package eclipse

import (
	"github.com/litescript/ls-eclipses/internal/astro"
	"github.com/litescript/ls-eclipses/internal/ephem"
)

// SearchMode controls how many satisfying sites a pair carries.
type SearchMode int

const (
	// Exhaustive collects every site from which both events are visible.
	Exhaustive SearchMode = iota
	// FirstMatch stops at the first satisfying site per pair.
	FirstMatch
)

// String returns the mode name.
func (m SearchMode) String() string {
	switch m {
	case Exhaustive:
		return "exhaustive"
	case FirstMatch:
		return "first-match"
	default:
		return "unknown"
	}
}

// ParseSearchMode parses a mode string, defaulting to Exhaustive.
func ParseSearchMode(s string) SearchMode {
	if s == "first-match" {
		return FirstMatch
	}
	return Exhaustive
}

// SiteResult is one site from which both events of a pair are visible,
// with the local magnitudes of each event.
type SiteResult struct {
	Site      astro.Observer
	FirstMag  float64
	SecondMag float64
}

// Pair is two eclipses close together in time, jointly visible from at
// least one site.
type Pair struct {
	First   ephem.Event
	Second  ephem.Event
	GapDays float64
	Sites   []SiteResult
}

// Options configures a pair search.
type Options struct {
	MaxGapDays float64
	Mode       SearchMode
}

// Stats counts the work a pair search performed. RecoveredErrors is the
// number of per-(event, site) provider failures that were treated as
// not-visible instead of aborting the search.
type Stats struct {
	PairsConsidered   int
	PairsFound        int
	VisibilityQueries int
	RecoveredErrors   int
}

// FindPairs scans a time-sorted event list for pairs within MaxGapDays and
// tests joint visibility at every site. Pure: identical inputs give
// identical output.
//
// The inner loop breaks, not continues, when the gap exceeds the threshold:
// the list is sorted, so every later j is further away still.
func FindPairs(events []ephem.Event, sites []astro.Observer, check Checker, opts Options) ([]Pair, Stats) {
	var pairs []Pair
	var st Stats

	for i := 0; i < len(events); i++ {
		for j := i + 1; j < len(events); j++ {
			gap := events[j].JD.Sub(events[i].JD)
			if gap > opts.MaxGapDays {
				break
			}
			st.PairsConsidered++

			var satisfying []SiteResult
			for _, obs := range sites {
				first, err := check.Check(events[i], obs)
				st.VisibilityQueries++
				if err != nil {
					st.RecoveredErrors++
					continue
				}
				if !first.Visible {
					continue
				}

				second, err := check.Check(events[j], obs)
				st.VisibilityQueries++
				if err != nil {
					st.RecoveredErrors++
					continue
				}
				if !second.Visible {
					continue
				}

				satisfying = append(satisfying, SiteResult{
					Site:      obs,
					FirstMag:  first.Magnitude,
					SecondMag: second.Magnitude,
				})
				if opts.Mode == FirstMatch {
					break
				}
			}

			if len(satisfying) > 0 {
				pairs = append(pairs, Pair{
					First:   events[i],
					Second:  events[j],
					GapDays: gap,
					Sites:   satisfying,
				})
				st.PairsFound++
			}
		}
	}

	return pairs, st
}
