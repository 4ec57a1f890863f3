package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"navitunes/internal/fsutil"
	"navitunes/internal/model"
	"navitunes/internal/playlist"
)

// Options configures a playlist extraction run.
type Options struct {
	// Extension is the playlist file extension, ".m3u" (default) or ".m3u8".
	Extension string

	// BackfillTags reads artist/title from a track's ID3 tags when the
	// library document has neither and the media file is locally readable.
	BackfillTags bool
}

// Extractor writes one playlist file per user playlist.
//
// Per-playlist failures are recorded in the run summary and the run
// continues; only a failure to create the output directory is fatal.
// Progress is reported through the optional callback and through the
// Progress counters, which are safe to poll from another goroutine.
type Extractor struct {
	lib  *Library
	opts Options

	processed atomic.Int32
	total     atomic.Int32

	onProgress func(model.ProgressEvent)
}

// NewExtractor creates an Extractor. onProgress may be nil.
func NewExtractor(lib *Library, opts Options, onProgress func(model.ProgressEvent)) *Extractor {
	if opts.Extension == "" {
		opts.Extension = ".m3u"
	}
	return &Extractor{lib: lib, opts: opts, onProgress: onProgress}
}

// Run emits every user playlist into outDir and returns the per-playlist
// summary.
//
// A playlist with zero resolvable items is still emitted as a header-only
// file: deterministic output makes a misconfigured library visible,
// where silently skipping would hide it. Order within each playlist is
// playback order from the document.
func (e *Extractor) Run(ctx context.Context, outDir string) (model.RunSummary, error) {
	var summary model.RunSummary

	if err := fsutil.EnsureDir(outDir); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	playlists := e.lib.UserPlaylists()
	e.processed.Store(0)
	e.total.Store(int32(len(playlists)))

	namer := playlist.NewNamer(e.opts.Extension)
	for _, pl := range playlists {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		tracks := e.lib.Resolve(pl)
		content := playlist.RenderM3U(tracks, e.opts.BackfillTags)
		name := namer.FileName(pl.Name)

		result := model.FileResult{Name: name, Resolved: len(tracks), Total: len(pl.Items)}
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0644); err != nil {
			result.Err = err
			e.progress(fmt.Sprintf("%s: %v", pl.Name, err), model.LevelError)
		} else {
			e.progress(fmt.Sprintf("%s: %d/%d tracks", pl.Name, len(tracks), len(pl.Items)), model.LevelSuccess)
		}
		summary.Add(result)
		e.processed.Add(1)
	}

	return summary, nil
}

// Progress returns how many playlists have been written so far and how
// many the run will write in total.
func (e *Extractor) Progress() (done, total int32) {
	return e.processed.Load(), e.total.Load()
}

func (e *Extractor) progress(message string, level model.ProgressLevel) {
	if e.onProgress != nil {
		e.onProgress(model.ProgressEvent{Message: message, Level: level})
	}
}
