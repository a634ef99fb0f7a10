package eclipse

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/litescript/ls-eclipses/internal/astro"
	"github.com/litescript/ls-eclipses/internal/ephem"
)

// FormatJD renders an instant as a readable proleptic Gregorian date,
// e.g. "3100 BC 07-15 04.2h" or "2024-04-08 18.3h".
func FormatJD(jd astro.JulianDay) string {
	y, m, d, h := astro.JDToCalendar(jd)
	if y <= 0 {
		return fmt.Sprintf("%d BC %02d-%02d %04.1fh", 1-y, m, d, h)
	}
	return fmt.Sprintf("%d-%02d-%02d %04.1fh", y, m, d, h)
}

// EventExport is a JSON-friendly eclipse event.
type EventExport struct {
	Kind      string  `json:"kind"`
	Type      string  `json:"type"`
	JD        float64 `json:"jd"`
	Date      string  `json:"date"`
	Magnitude float64 `json:"magnitude"`
	Gamma     float64 `json:"gamma"`
	SubLatDeg float64 `json:"sub_lat_deg,omitempty"`
	SubLonDeg float64 `json:"sub_lon_deg,omitempty"`
}

// SiteExport is a JSON-friendly satisfying site.
type SiteExport struct {
	Name      string  `json:"name,omitempty"`
	LatDeg    float64 `json:"lat_deg"`
	LonDeg    float64 `json:"lon_deg"`
	FirstMag  float64 `json:"first_magnitude"`
	SecondMag float64 `json:"second_magnitude"`
}

// PairExport is a JSON-friendly eclipse pair.
type PairExport struct {
	First   EventExport  `json:"first"`
	Second  EventExport  `json:"second"`
	GapDays float64      `json:"gap_days"`
	Sites   []SiteExport `json:"sites"`
}

// ResultExport is the JSON-serializable outcome of one search run.
type ResultExport struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Provider    string        `json:"provider"`
	StartYear   int           `json:"start_year"`
	EndYear     int           `json:"end_year"`
	MaxGapDays  float64       `json:"max_gap_days"`
	Mode        string        `json:"mode"`
	SiteCount   int           `json:"site_count"`
	Events      []EventExport `json:"events"`
	Pairs       []PairExport  `json:"pairs"`
	Stats       Stats         `json:"stats"`
}

func exportEvent(ev ephem.Event) EventExport {
	e := EventExport{
		Kind:      ev.Kind.String(),
		Type:      ev.Type.String(),
		JD:        float64(ev.JD),
		Date:      FormatJD(ev.JD),
		Magnitude: ev.Magnitude,
		Gamma:     ev.Gamma,
	}
	if ev.Kind == ephem.KindSolar {
		e.SubLatDeg = ev.SubLatDeg
		e.SubLonDeg = ev.SubLonDeg
	}
	return e
}

// ExportResult converts a finished search to an exportable format.
func ExportResult(providerName string, startYear, endYear int, opts Options,
	siteCount int, events []ephem.Event, pairs []Pair, st Stats) *ResultExport {

	export := &ResultExport{
		GeneratedAt: time.Now().UTC(),
		Provider:    providerName,
		StartYear:   startYear,
		EndYear:     endYear,
		MaxGapDays:  opts.MaxGapDays,
		Mode:        opts.Mode.String(),
		SiteCount:   siteCount,
		Stats:       st,
	}

	for _, ev := range events {
		export.Events = append(export.Events, exportEvent(ev))
	}
	for _, p := range pairs {
		pe := PairExport{
			First:   exportEvent(p.First),
			Second:  exportEvent(p.Second),
			GapDays: p.GapDays,
		}
		for _, s := range p.Sites {
			pe.Sites = append(pe.Sites, SiteExport{
				Name:      s.Site.Name,
				LatDeg:    s.Site.LatDeg,
				LonDeg:    s.Site.LonDeg,
				FirstMag:  s.FirstMag,
				SecondMag: s.SecondMag,
			})
		}
		export.Pairs = append(export.Pairs, pe)
	}

	return export
}

// WriteJSON writes the export as indented JSON.
func (e *ResultExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteEventsTable prints the enumerated eclipses as a text table.
func WriteEventsTable(w io.Writer, events []ephem.Event) {
	fmt.Fprintf(w, "%-6s %-10s %-22s %10s %8s\n", "Kind", "Type", "Date (UT)", "Magnitude", "Gamma")
	fmt.Fprintln(w, strings.Repeat("─", 62))

	solar, lunar := 0, 0
	for _, ev := range events {
		if ev.Kind == ephem.KindSolar {
			solar++
		} else {
			lunar++
		}
		fmt.Fprintf(w, "%-6s %-10s %-22s %10.3f %8.3f\n",
			ev.Kind, ev.Type, FormatJD(ev.JD), ev.Magnitude, ev.Gamma)
	}

	fmt.Fprintf(w, "\nTotal: %d eclipses (%d solar, %d lunar)\n", len(events), solar, lunar)
}

// WritePairsTable prints found pairs with their satisfying sites and a
// magnitude summary across sites.
func WritePairsTable(w io.Writer, pairs []Pair) {
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No eclipse pairs found")
		return
	}

	for i, p := range pairs {
		fmt.Fprintf(w, "Pair %d (%.2f days apart):\n", i+1, p.GapDays)
		fmt.Fprintf(w, "  Eclipse 1: %-6s %-10s %s\n", p.First.Kind, p.First.Type, FormatJD(p.First.JD))
		fmt.Fprintf(w, "  Eclipse 2: %-6s %-10s %s\n", p.Second.Kind, p.Second.Type, FormatJD(p.Second.JD))

		mags := make([]float64, 0, len(p.Sites))
		for _, s := range p.Sites {
			name := s.Site.Name
			if name == "" {
				name = fmt.Sprintf("(%.1f°, %.1f°)", s.Site.LatDeg, s.Site.LonDeg)
			}
			fmt.Fprintf(w, "  ✓ both visible from %-26s mag %.3f / %.3f\n",
				name, s.FirstMag, s.SecondMag)
			mags = append(mags, s.FirstMag, s.SecondMag)
		}

		if len(mags) > 0 {
			fmt.Fprintf(w, "  %d site(s), local magnitude mean %.3f, peak %.3f\n",
				len(p.Sites), stat.Mean(mags, nil), floats.Max(mags))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total: %d pair(s)\n", len(pairs))
}
