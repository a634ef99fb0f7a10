package eclipse

import "testing"

func TestGrid(t *testing.T) {
	// 15° step over the default band: 9 latitudes x 24 longitudes.
	sites := Grid(-60, 60, -180, 180, 15)
	if len(sites) != 9*24 {
		t.Errorf("got %d sites, want %d", len(sites), 9*24)
	}

	for _, s := range sites {
		if s.LatDeg < -60 || s.LatDeg > 60 {
			t.Errorf("latitude %.1f out of band", s.LatDeg)
		}
		if s.LonDeg < -180 || s.LonDeg >= 180 {
			t.Errorf("longitude %.1f out of range (antimeridian must not repeat)", s.LonDeg)
		}
	}
}

func TestGrid_Degenerate(t *testing.T) {
	if sites := Grid(0, 0, 0, 15, 15); len(sites) != 1 {
		t.Errorf("single-point grid = %d sites, want 1", len(sites))
	}
	if sites := Grid(-60, 60, -180, 180, 0); sites != nil {
		t.Errorf("zero step produced %d sites", len(sites))
	}
	if sites := Grid(-60, 60, -180, 180, -10); sites != nil {
		t.Errorf("negative step produced %d sites", len(sites))
	}
}

func TestAncientSites(t *testing.T) {
	if len(AncientSites) < 5 {
		t.Fatalf("only %d ancient sites", len(AncientSites))
	}
	seen := map[string]bool{}
	for _, s := range AncientSites {
		if s.Name == "" {
			t.Error("ancient site without a name")
		}
		if seen[s.Name] {
			t.Errorf("duplicate site %q", s.Name)
		}
		seen[s.Name] = true
		if s.LatDeg < -90 || s.LatDeg > 90 || s.LonDeg < -180 || s.LonDeg > 180 {
			t.Errorf("site %q at (%.1f, %.1f) out of range", s.Name, s.LatDeg, s.LonDeg)
		}
	}
}
