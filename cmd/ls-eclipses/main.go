// Command ls-eclipses searches a historical date range for pairs of eclipses
// visible from a common location within a small number of days.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"github.com/litescript/ls-eclipses/internal/astro"
	"github.com/litescript/ls-eclipses/internal/eclipse"
	"github.com/litescript/ls-eclipses/internal/ephem"
	"github.com/litescript/ls-eclipses/internal/logging"
	"github.com/litescript/ls-eclipses/internal/ui"
)

// CLI flags
var (
	startYear    int
	endYear      int
	maxGapDays   float64
	gridStep     float64
	latMin       float64
	latMax       float64
	useSites     bool
	modeStr      string
	jsonPath     string
	summaryMode  bool
	eventsMode   bool
	verifyMode   bool
	maxLunations int
)

// Default search range: 3100 BC to 3000 BC in astronomical year numbering.
const (
	defaultStartYear = -3099
	defaultEndYear   = -2999
	defaultMaxGap    = 15.0
	defaultGridStep  = 15.0
)

func main() {
	// Optional .env for local defaults; absence is not an error.
	_ = godotenv.Load()

	flag.IntVar(&startYear, "start-year", defaultStartYear, "First year of search range (astronomical, negative = BC)")
	flag.IntVar(&endYear, "end-year", defaultEndYear, "Last year of search range (astronomical)")
	flag.Float64Var(&maxGapDays, "max-gap", defaultMaxGap, "Maximum days between paired eclipses")
	flag.Float64Var(&gridStep, "grid-step", defaultGridStep, "Location grid step in degrees")
	flag.Float64Var(&latMin, "lat-min", -60, "Southern edge of the location grid")
	flag.Float64Var(&latMax, "lat-max", 60, "Northern edge of the location grid")
	flag.BoolVar(&useSites, "sites", false, "Test named ancient sites instead of a grid")
	flag.StringVar(&modeStr, "mode", "exhaustive", "Pair search mode (exhaustive, first-match)")
	flag.StringVar(&jsonPath, "json", "", "Export JSON results to file (use - for stdout)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&eventsMode, "events", false, "Print the enumerated eclipse list")
	flag.BoolVar(&verifyMode, "verify", false, "Cross-check found pairs against JPL Horizons")
	flag.IntVar(&maxLunations, "max-lunations", ephem.DefaultConfig().MaxLunations, "Forward search bound per provider query, in lunations")
	logLevel := flag.String("log-level", envOr("LS_ECLIPSES_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Oracle construction failure is fatal; there is nothing to retry against.
	provider, err := ephem.NewMeeusProvider(ephem.Config{MaxLunations: maxLunations})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: ephemeris unavailable: %v\n", err)
		os.Exit(1)
	}

	if endYear < startYear {
		fmt.Fprintf(os.Stderr, "Error: end year %d precedes start year %d\n", endYear, startYear)
		os.Exit(1)
	}

	opts := eclipse.Options{
		MaxGapDays: maxGapDays,
		Mode:       eclipse.ParseSearchMode(modeStr),
	}

	sites := eclipse.Grid(latMin, latMax, -180, 180, gridStep)
	if useSites {
		sites = eclipse.AncientSites
	}

	events, pairs, stats, err := runSearch(provider, sites, opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Fall back to the text summary when stdout is not a terminal.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	headless := summaryMode || eventsMode || verifyMode || jsonPath != "" || !isTTY

	if headless {
		if err := runHeadless(ctx, provider, events, pairs, stats, opts, len(sites)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	model := ui.New(browserResult(provider.Name(), events, pairs, stats))
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// runSearch enumerates both eclipse kinds over the configured range and
// finds jointly-visible pairs.
func runSearch(provider ephem.Provider, sites []astro.Observer, opts eclipse.Options, logger *logging.Logger) ([]ephem.Event, []eclipse.Pair, eclipse.Stats, error) {
	start := astro.CalendarToJD(startYear, 1, 1, 0)
	end := astro.CalendarToJD(endYear, 12, 31, 23.99)

	log := logger.Prefixed("search")
	log.Info("Phase 1: enumerating eclipses %s to %s",
		eclipse.FormatJD(start), eclipse.FormatJD(end))

	solar, err := eclipse.Enumerate(provider, ephem.KindSolar, start, end)
	if err != nil {
		return nil, nil, eclipse.Stats{}, fmt.Errorf("enumerate solar eclipses: %w", err)
	}
	lunar, err := eclipse.Enumerate(provider, ephem.KindLunar, start, end)
	if err != nil {
		return nil, nil, eclipse.Stats{}, fmt.Errorf("enumerate lunar eclipses: %w", err)
	}
	log.Info("Found %d solar and %d lunar eclipses", len(solar), len(lunar))

	events := eclipse.MergeByTime(solar, lunar)

	log.Info("Phase 2: pairing within %.0f days over %d site(s), %s mode",
		opts.MaxGapDays, len(sites), opts.Mode)

	check := eclipse.Checker{Provider: provider}
	pairs, stats := eclipse.FindPairs(events, sites, check, opts)

	log.Info("Found %d pair(s); %d candidate windows, %d visibility queries",
		len(pairs), stats.PairsConsidered, stats.VisibilityQueries)
	if stats.RecoveredErrors > 0 {
		log.Warn("%d visibility queries failed and were treated as not visible", stats.RecoveredErrors)
	}

	return events, pairs, stats, nil
}

// runHeadless handles all non-TUI output modes.
func runHeadless(ctx context.Context, provider ephem.Provider, events []ephem.Event,
	pairs []eclipse.Pair, stats eclipse.Stats, opts eclipse.Options, siteCount int) error {

	if eventsMode {
		eclipse.WriteEventsTable(os.Stdout, events)
		fmt.Println()
	}

	if summaryMode || (!eventsMode && jsonPath == "" && !verifyMode) {
		eclipse.WritePairsTable(os.Stdout, pairs)
	}

	if jsonPath != "" {
		export := eclipse.ExportResult(provider.Name(), startYear, endYear, opts,
			siteCount, events, pairs, stats)
		if jsonPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(jsonPath)
			if err != nil {
				return fmt.Errorf("create JSON file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if verifyMode {
		return runVerify(ctx, provider, pairs)
	}

	return nil
}

// runVerify cross-checks each pair's first satisfying site against JPL
// Horizons: built-in Moon/Sun altitudes versus the reference ephemeris.
func runVerify(ctx context.Context, provider ephem.Provider, pairs []eclipse.Pair) error {
	if len(pairs) == 0 {
		fmt.Println("Nothing to verify: no pairs found")
		return nil
	}

	client := ephem.NewHorizonsClient()

	for i, p := range pairs {
		site := p.Sites[0].Site
		fmt.Printf("Pair %d @ (%.1f°, %.1f°):\n", i+1, site.LatDeg, site.LonDeg)

		for _, ev := range []ephem.Event{p.First, p.Second} {
			body := ephem.BodyMoon
			localAlt, err := provider.MoonAltitude(ev.JD, site)
			if ev.Kind == ephem.KindSolar {
				body = ephem.BodySun
				cir, cerr := provider.SolarCircumstances(ev.JD, site)
				localAlt, err = cir.SunAltDeg, cerr
			}
			if err != nil {
				fmt.Printf("  %-6s %s  local model failed: %v\n", ev.Kind, eclipse.FormatJD(ev.JD), err)
				continue
			}

			_, refAlt, err := client.BodyAltitude(ctx, body, ev.JD, site)
			if err != nil {
				fmt.Printf("  %-6s %s  %s alt %+6.2f°  (Horizons unavailable: %v)\n",
					ev.Kind, eclipse.FormatJD(ev.JD), body, localAlt, err)
				continue
			}

			fmt.Printf("  %-6s %s  %s alt %+6.2f°  Horizons %+6.2f°  Δ %+5.2f°\n",
				ev.Kind, eclipse.FormatJD(ev.JD), body, localAlt, refAlt, localAlt-refAlt)
		}
	}

	return nil
}

// browserResult packages a finished search for the TUI.
func browserResult(providerName string, events []ephem.Event, pairs []eclipse.Pair, stats eclipse.Stats) ui.Result {
	result := ui.Result{
		Provider:   providerName,
		StartYear:  startYear,
		EndYear:    endYear,
		MaxGapDays: maxGapDays,
		Pairs:      pairs,
		Stats:      stats,
	}
	for _, ev := range events {
		result.Events = append(result.Events, ui.SearchEvent{
			Row: fmt.Sprintf("%-6s %-10s %-22s mag %.3f", ev.Kind, ev.Type, eclipse.FormatJD(ev.JD), ev.Magnitude),
		})
	}
	return result
}

// envOr returns an environment value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
