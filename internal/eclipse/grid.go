package eclipse

import "github.com/litescript/ls-eclipses/internal/astro"

// Grid generates a regular latitude/longitude grid of observing sites.
// Latitude runs from latMin to latMax inclusive; longitude from lonMin up
// to but excluding lonMax (the antimeridian duplicates lonMin).
func Grid(latMin, latMax, lonMin, lonMax, stepDeg float64) []astro.Observer {
	if stepDeg <= 0 {
		return nil
	}

	var sites []astro.Observer
	for lat := latMin; lat <= latMax; lat += stepDeg {
		for lon := lonMin; lon < lonMax; lon += stepDeg {
			sites = append(sites, astro.Observer{LatDeg: lat, LonDeg: lon})
		}
	}
	return sites
}

// AncientSites are early urban centers plausibly occupied around the turn
// of the fourth millennium BC, used as an alternative to the regular grid.
var AncientSites = []astro.Observer{
	{LatDeg: 32.5, LonDeg: 44.4, Name: "Babylon (Iraq)"},
	{LatDeg: 29.8, LonDeg: 31.2, Name: "Memphis (Egypt)"},
	{LatDeg: 38.0, LonDeg: 23.7, Name: "Athens (Greece)"},
	{LatDeg: 41.9, LonDeg: 12.5, Name: "Rome (Italy)"},
	{LatDeg: 31.8, LonDeg: 35.2, Name: "Jerusalem"},
	{LatDeg: 29.9, LonDeg: 52.9, Name: "Persepolis (Iran)"},
	{LatDeg: 30.6, LonDeg: 72.9, Name: "Harappa (Pakistan)"},
	{LatDeg: 27.3, LonDeg: 68.1, Name: "Mohenjo-daro (Pakistan)"},
	{LatDeg: 34.3, LonDeg: 108.9, Name: "Chang'an (China)"},
	{LatDeg: 31.3, LonDeg: 45.6, Name: "Uruk (Iraq)"},
}
