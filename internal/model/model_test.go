package model

import (
	"errors"
	"testing"
)

func TestNewPrefixRule_NormalizesSeparators(t *testing.T) {
	rule := NewPrefixRule(`C:\Users\Tom\Music\`, "../", `iTunes Media\`)

	if rule.Source != "C:/Users/Tom/Music/" {
		t.Errorf("Source = %q, want forward slashes", rule.Source)
	}
	if rule.StripSubpath != "iTunes Media/" {
		t.Errorf("StripSubpath = %q, want forward slashes", rule.StripSubpath)
	}
	if rule.Target != "../" {
		t.Errorf("Target = %q, should be untouched", rule.Target)
	}
}

func TestTrack_Resolvable(t *testing.T) {
	resolved := &Track{ID: 1, Location: "/music/a.mp3"}
	dead := &Track{ID: 2}

	if !resolved.Resolvable() {
		t.Error("track with location should be resolvable")
	}
	if dead.Resolvable() {
		t.Error("track without location should not be resolvable")
	}
}

func TestTrack_DurationSeconds(t *testing.T) {
	tests := []struct {
		name      string
		totalTime int
		want      int
	}{
		{"normal", 183000, 183},
		{"rounds down", 183999, 183},
		{"unknown", 0, -1},
		{"negative", -5, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &Track{TotalTime: tt.totalTime}
			if got := tr.DurationSeconds(); got != tt.want {
				t.Errorf("DurationSeconds() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlaylist_Builtin(t *testing.T) {
	tests := []struct {
		name     string
		playlist Playlist
		want     bool
	}{
		{"user playlist", Playlist{Name: "Favorites"}, false},
		{"master", Playlist{Name: "Library", Master: true}, true},
		{"distinguished", Playlist{Name: "Podcasts", Distinguished: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.playlist.Builtin(); got != tt.want {
				t.Errorf("Builtin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunSummary_Counts(t *testing.T) {
	var s RunSummary
	s.Add(FileResult{Name: "a.m3u", Resolved: 3, Total: 3})
	s.Add(FileResult{Name: "b.m3u", Err: errors.New("permission denied")})
	s.Add(FileResult{Name: "c.m3u", Resolved: 1, Total: 2})

	if got := s.Succeeded(); got != 2 {
		t.Errorf("Succeeded() = %d, want 2", got)
	}
	if got := s.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
	failed := s.Errors()
	if len(failed) != 1 || failed[0].Name != "b.m3u" {
		t.Errorf("Errors() = %v, want just b.m3u", failed)
	}
}
