package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn)
	l.SetOutput(&buf)

	l.Debug("debug msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	out := buf.String()
	if strings.Contains(out, "debug msg") || strings.Contains(out, "info msg") {
		t.Errorf("sub-level messages leaked: %q", out)
	}
	if !strings.Contains(out, "warn msg") || !strings.Contains(out, "error msg") {
		t.Errorf("expected messages missing: %q", out)
	}
}

func TestPrefixed(t *testing.T) {
	var buf bytes.Buffer
	root := New(LevelDebug)
	root.SetOutput(&buf)

	child := root.Prefixed("search")
	grandchild := child.Prefixed("pairs")

	child.Info("one")
	grandchild.Info("two")

	out := buf.String()
	if !strings.Contains(out, "search: one") {
		t.Errorf("child prefix missing: %q", out)
	}
	if !strings.Contains(out, "search/pairs: two") {
		t.Errorf("nested prefix missing: %q", out)
	}

	// Level changes on a child apply to the whole family.
	child.SetLevel(LevelError)
	buf.Reset()
	root.Info("suppressed")
	if buf.Len() != 0 {
		t.Errorf("shared level not applied: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"bogus", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing should happen")
	l.Prefixed("sub").Warn("nor here")
}
