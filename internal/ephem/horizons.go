package ephem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-eclipses/internal/astro"
)

const (
	// HorizonsAPIURL is the JPL Horizons JSON API endpoint.
	HorizonsAPIURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

	// RequestTimeout is the HTTP request timeout.
	RequestTimeout = 30 * time.Second
)

// Body is a NAIF ID of a solar system body.
type Body int

const (
	BodySun  Body = 10
	BodyMoon Body = 301
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	default:
		return fmt.Sprintf("body %d", int(b))
	}
}

// HorizonsClient queries JPL Horizons for topocentric body positions.
// It is the cross-check half of the verify mode: the built-in provider's
// altitudes are compared against Horizons for the same instant and site.
// Horizons accepts Julian Day time specs, so remote BC epochs need no
// calendar formatting.
type HorizonsClient struct {
	client  *http.Client
	baseURL string
}

// NewHorizonsClient creates a new Horizons API client.
func NewHorizonsClient() *HorizonsClient {
	return &HorizonsClient{
		client: &http.Client{
			Timeout: RequestTimeout,
		},
		baseURL: HorizonsAPIURL,
	}
}

// BodyAltitude returns the apparent azimuth and elevation of a body at a
// UT instant as seen from the given site.
func (c *HorizonsClient) BodyAltitude(ctx context.Context, body Body, jd astro.JulianDay, obs astro.Observer) (azDeg, elDeg float64, err error) {
	// Build request parameters - values must be quoted with single quotes
	params := url.Values{}
	params.Set("format", "json")
	params.Set("COMMAND", fmt.Sprintf("'%d'", body))
	params.Set("OBJ_DATA", "NO")
	params.Set("MAKE_EPHEM", "YES")
	params.Set("EPHEM_TYPE", "OBSERVER")
	params.Set("CENTER", "'coord@399'")
	params.Set("COORD_TYPE", "GEODETIC")
	params.Set("SITE_COORD", fmt.Sprintf("'%.4f,%.4f,%.3f'", obs.LonDeg, obs.LatDeg, obs.AltM/1000))
	params.Set("START_TIME", fmt.Sprintf("'JD %.6f'", float64(jd)))
	params.Set("STOP_TIME", fmt.Sprintf("'JD %.6f'", float64(jd)+1.0/1440))
	params.Set("STEP_SIZE", "'1m'")
	params.Set("QUANTITIES", "'4'") // 4=Apparent Az/El

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("build horizons request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("horizons request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, 0, fmt.Errorf("horizons returned status %d: %s", resp.StatusCode, string(body))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read response: %w", err)
	}

	return parseAzElResponse(raw)
}

// horizonsResponse represents the JSON API response.
type horizonsResponse struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
}

// parseAzElResponse extracts the first Az/El row from a Horizons response.
func parseAzElResponse(body []byte) (azDeg, elDeg float64, err error) {
	var resp horizonsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, 0, fmt.Errorf("failed to parse JSON: %w", err)
	}

	// The ephemeris table is a text blob between $$SOE and $$EOE markers.
	soeIdx := strings.Index(resp.Result, "$$SOE")
	eoeIdx := strings.Index(resp.Result, "$$EOE")
	if soeIdx == -1 || eoeIdx == -1 || soeIdx >= eoeIdx {
		return 0, 0, fmt.Errorf("could not find ephemeris data markers")
	}

	for _, line := range strings.Split(resp.Result[soeIdx+5:eoeIdx], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		az, el, err := parseAzElLine(line)
		if err != nil {
			continue // Skip unparseable lines
		}
		return az, el, nil
	}

	return 0, 0, fmt.Errorf("no usable ephemeris rows in response")
}

// parseAzElLine parses a single ephemeris data line.
// Format for QUANTITIES='4' (Az/El):
//
//	2025-Dec-05 00:00 *   261.032124  32.878027
//
// Fields: date, time, optional flags, azimuth, elevation. The Az/El values
// are the last two numeric fields; flag fields (*, Cm, Nm, ...) are skipped.
func parseAzElLine(line string) (azDeg, elDeg float64, err error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, 0, fmt.Errorf("insufficient fields: %d", len(fields))
	}

	numericCount := 0
	for i := 2; i < len(fields); i++ {
		val, perr := strconv.ParseFloat(fields[i], 64)
		if perr != nil {
			continue
		}
		numericCount++
		if numericCount == 1 {
			azDeg = val
		} else if numericCount == 2 {
			elDeg = val
			return azDeg, elDeg, nil
		}
	}

	return 0, 0, fmt.Errorf("no az/el values in line %q", line)
}
