package model

import "strings"

// Track represents a single entry from the iTunes library document.
//
// Tracks are built once while scanning the document, held in a table
// keyed by ID for the lifetime of one extraction run, and read-only
// afterwards. A track without a Location (a dead or missing file) stays
// in the table so playlists referencing it can be counted, but it is
// never written to a playlist file.
type Track struct {
	// ID is the library-wide identifier playlists join against.
	ID int

	// Location is the decoded filesystem path of the media file.
	// Empty when the library document carried no Location for the entry.
	Location string

	// Name is the track title, if present in the document.
	Name string

	// Artist is the track artist, if present in the document.
	Artist string

	// Album is the album title, if present in the document.
	Album string

	// TotalTime is the track duration in milliseconds. Zero when unknown.
	TotalTime int
}

// Resolvable reports whether the track can appear in an emitted playlist.
func (t *Track) Resolvable() bool {
	return t.Location != ""
}

// DurationSeconds returns the track duration in whole seconds,
// or -1 when the duration is unknown (the extended-M3U convention).
func (t *Track) DurationSeconds() int {
	if t.TotalTime <= 0 {
		return -1
	}
	return t.TotalTime / 1000
}

// Playlist is a named ordered collection of track references.
type Playlist struct {
	// Name is the display name; it is sanitized before use as a file name.
	Name string

	// Master marks the whole-library playlist iTunes always exports.
	Master bool

	// Distinguished marks other built-in playlists (Podcasts, Movies, ...).
	Distinguished bool

	// Items holds track ids in playback order. Order is preserved
	// through extraction.
	Items []int
}

// Builtin reports whether the playlist is system-generated and should be
// excluded from extraction.
func (p *Playlist) Builtin() bool {
	return p.Master || p.Distinguished
}

// PrefixRule is the immutable configuration for one path-normalization
// run: which source prefix to look for, what to replace it with, and an
// optional subpath fragment to drop from the remainder.
//
// Construct rules with NewPrefixRule so the source side is normalized to
// forward slashes before any matching happens. Matching is anchored to
// the start of the path and case-insensitive.
type PrefixRule struct {
	// Source is the path prefix to match, forward-slash form.
	Source string

	// Target replaces Source, e.g. "../" or "/music/".
	Target string

	// StripSubpath, when non-empty, is additionally removed from the
	// remainder after the prefix substitution (first occurrence,
	// case-insensitive). Used for library-internal folders like
	// "iTunes Media/".
	StripSubpath string
}

// NewPrefixRule builds a PrefixRule, normalizing backslashes in the
// source and strip fragments so they match paths that have already had
// their separators converted.
func NewPrefixRule(source, target, strip string) PrefixRule {
	return PrefixRule{
		Source:       strings.ReplaceAll(source, `\`, "/"),
		Target:       target,
		StripSubpath: strings.ReplaceAll(strip, `\`, "/"),
	}
}

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent is a progress update emitted by a pipeline stage and
// rendered by whichever front end is driving it.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// FileResult is the outcome for one playlist or file within a run.
type FileResult struct {
	// Name is the playlist or file name the result refers to.
	Name string

	// Resolved counts items that made it into the output
	// (resolved tracks for extraction, processed track lines for
	// conversion).
	Resolved int

	// Total counts items that were considered.
	Total int

	// Err is the per-item failure, nil on success.
	Err error
}

// RunSummary accumulates per-item outcomes for one batch run.
// Errors local to a single item never abort the batch; they end up here.
type RunSummary struct {
	Results []FileResult
}

// Add records one result.
func (s *RunSummary) Add(r FileResult) {
	s.Results = append(s.Results, r)
}

// Succeeded returns the number of items that completed without error.
func (s *RunSummary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of items that recorded an error.
func (s *RunSummary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// Errors returns only the failed results, for end-of-run detail output.
func (s *RunSummary) Errors() []FileResult {
	var failed []FileResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
