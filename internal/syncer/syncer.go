package syncer

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"navitunes/internal/model"
)

// runner executes one external command. Tests inject a fake to assert
// on the exact invocations without needing rsync on the machine.
type runner func(ctx context.Context, name string, args ...string) error

// Manager copies artist directories from a source music library to a
// destination with rsync, a bounded number of transfers at a time.
type Manager struct {
	concurrency int
	run         runner

	processed atomic.Int32
	total     atomic.Int32

	onProgress func(model.ProgressEvent)
}

// New creates a Manager running at most concurrency transfers at once.
// Values below 1 are treated as 1. onProgress may be nil.
func New(concurrency int, onProgress func(model.ProgressEvent)) *Manager {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Manager{
		concurrency: concurrency,
		run:         runRsync,
		onProgress:  onProgress,
	}
}

// Available reports whether rsync can be found on PATH. Callers should
// check this before starting a sync and tell the operator to install
// rsync when it fails.
func Available() error {
	if _, err := exec.LookPath("rsync"); err != nil {
		return fmt.Errorf("rsync not found on PATH (install it with your package manager, e.g. apt install rsync / brew install rsync): %w", err)
	}
	return nil
}

// ArtistDirs lists the immediate subdirectories of src, sorted by name.
// Loose files at the top level are ignored; rsync operates per artist
// folder so interrupted runs resume at folder granularity.
func ArtistDirs(src string) ([]string, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}
	return dirs, nil
}

// Sync copies every artist directory under src into dst and returns the
// per-directory summary.
//
// Transfers run concurrently up to the configured limit. A failed
// transfer is recorded and the rest continue; cancellation stops new
// transfers from starting and interrupts the running ones through their
// command contexts. rsync's --partial keeps partially-transferred files
// so a rerun picks up where it stopped.
func (m *Manager) Sync(ctx context.Context, src, dst string) (model.RunSummary, error) {
	var summary model.RunSummary

	dirs, err := ArtistDirs(src)
	if err != nil {
		return summary, err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return summary, fmt.Errorf("creating destination: %w", err)
	}

	m.processed.Store(0)
	m.total.Store(int32(len(dirs)))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)

	for _, dir := range dirs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result := model.FileResult{Name: dir}
			result.Err = m.copyDir(gctx, src, dst, dir)

			mu.Lock()
			summary.Add(result)
			mu.Unlock()
			m.processed.Add(1)

			if result.Err != nil {
				m.progress(fmt.Sprintf("%s: %v", dir, result.Err), model.LevelError)
			} else {
				m.progress(fmt.Sprintf("Copied %s", dir), model.LevelSuccess)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// copyDir runs one rsync invocation for a single artist directory. The
// trailing separator on the source makes rsync copy the directory's
// contents into dst/dir rather than nesting another level.
func (m *Manager) copyDir(ctx context.Context, src, dst, dir string) error {
	source := filepath.Join(src, dir) + string(filepath.Separator)
	target := filepath.Join(dst, dir)
	return m.run(ctx, "rsync", "-a", "--partial", "--human-readable", source, target)
}

// Progress returns how many directories have finished and how many the
// run covers in total.
func (m *Manager) Progress() (done, total int32) {
	return m.processed.Load(), m.total.Load()
}

func (m *Manager) progress(message string, level model.ProgressLevel) {
	if m.onProgress != nil {
		m.onProgress(model.ProgressEvent{Message: message, Level: level})
	}
}

// runRsync executes the real command, folding stderr into the returned
// error so transfer failures are diagnosable from the summary alone.
func runRsync(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
