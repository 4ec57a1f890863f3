package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"navitunes/internal/model"
)

func TestEvent_Prefixes(t *testing.T) {
	tests := []struct {
		level model.ProgressLevel
		want  string
	}{
		{model.LevelInfo, "› hello"},
		{model.LevelSuccess, "✓ hello"},
		{model.LevelWarning, "! hello"},
		{model.LevelError, "✗ hello"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		NewPrinter(&buf, false).Event(model.ProgressEvent{Message: "hello", Level: tt.level})
		if got := strings.TrimRight(buf.String(), "\n"); got != tt.want {
			t.Errorf("level %d: got %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestEvent_VerboseGating(t *testing.T) {
	event := model.ProgressEvent{Message: "detail", Level: model.LevelVerbose}

	var quiet bytes.Buffer
	NewPrinter(&quiet, false).Event(event)
	if quiet.Len() != 0 {
		t.Errorf("verbose event printed without -v: %q", quiet.String())
	}

	var loud bytes.Buffer
	NewPrinter(&loud, true).Event(event)
	if !strings.Contains(loud.String(), "detail") {
		t.Errorf("verbose event dropped with -v: %q", loud.String())
	}
}

func TestSummary_PlainOutputWhenNotTerminal(t *testing.T) {
	var summary model.RunSummary
	summary.Add(model.FileResult{Name: "Road Trip.m3u", Resolved: 2, Total: 3})
	summary.Add(model.FileResult{Name: "Chill.m3u", Err: errors.New("boom")})

	var buf bytes.Buffer
	NewPrinter(&buf, false).Summary(summary)
	out := buf.String()

	if strings.Contains(out, "╭") {
		t.Error("table borders in non-terminal output")
	}
	if !strings.Contains(out, "Road Trip.m3u\t2/3\tok") {
		t.Errorf("missing plain result line:\n%s", out)
	}
	if !strings.Contains(out, "failed: boom") {
		t.Errorf("missing failure line:\n%s", out)
	}
	if !strings.Contains(out, "1 succeeded, 1 failed") {
		t.Errorf("missing totals line:\n%s", out)
	}
}

func TestSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, false).Summary(model.RunSummary{})
	if !strings.Contains(buf.String(), "Nothing to do.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("a bytes.Buffer is not a terminal")
	}
}
