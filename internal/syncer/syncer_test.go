package syncer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"navitunes/internal/model"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations and fails the directories listed in
// failFor.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	failFor map[string]error
}

func (f *fakeRunner) run(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: args})
	f.mu.Unlock()

	for dir, err := range f.failFor {
		if strings.Contains(args[len(args)-2], dir) {
			return err
		}
	}
	return nil
}

func sourceTree(t *testing.T, artists ...string) string {
	t.Helper()
	src := t.TempDir()
	for _, artist := range artists {
		if err := os.MkdirAll(filepath.Join(src, artist, "Album"), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// Loose files at the top level are not artist directories.
	if err := os.WriteFile(filepath.Join(src, ".DS_Store"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	return src
}

func TestArtistDirs(t *testing.T) {
	src := sourceTree(t, "The Beatles", "Aphex Twin")

	dirs, err := ArtistDirs(src)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Aphex Twin", "The Beatles"}
	if len(dirs) != 2 || dirs[0] != want[0] || dirs[1] != want[1] {
		t.Errorf("ArtistDirs() = %v, want %v", dirs, want)
	}
}

func TestSync_InvokesRsyncPerDirectory(t *testing.T) {
	src := sourceTree(t, "The Beatles", "Aphex Twin")
	dst := t.TempDir()

	fake := &fakeRunner{}
	m := New(2, nil)
	m.run = fake.run

	summary, err := m.Sync(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if summary.Succeeded() != 2 || summary.Failed() != 0 {
		t.Errorf("summary = %d ok / %d failed, want 2/0", summary.Succeeded(), summary.Failed())
	}

	if len(fake.calls) != 2 {
		t.Fatalf("got %d invocations, want 2", len(fake.calls))
	}

	var sources []string
	for _, c := range fake.calls {
		if c.name != "rsync" {
			t.Errorf("invoked %q, want rsync", c.name)
		}
		if len(c.args) != 5 {
			t.Fatalf("args = %v, want 5 elements", c.args)
		}
		for i, flag := range []string{"-a", "--partial", "--human-readable"} {
			if c.args[i] != flag {
				t.Errorf("args[%d] = %q, want %q", i, c.args[i], flag)
			}
		}
		source := c.args[3]
		if !strings.HasSuffix(source, string(filepath.Separator)) {
			t.Errorf("source %q missing trailing separator", source)
		}
		sources = append(sources, source)

		target := c.args[4]
		if strings.HasSuffix(target, string(filepath.Separator)) {
			t.Errorf("target %q should not end with a separator", target)
		}
		if !strings.HasPrefix(target, dst) {
			t.Errorf("target %q not under destination %q", target, dst)
		}
	}

	sort.Strings(sources)
	if !strings.Contains(sources[0], "Aphex Twin") || !strings.Contains(sources[1], "The Beatles") {
		t.Errorf("sources = %v, want one per artist", sources)
	}

	done, total := m.Progress()
	if done != 2 || total != 2 {
		t.Errorf("Progress() = %d/%d, want 2/2", done, total)
	}
}

func TestSync_ContinuesPastFailedTransfer(t *testing.T) {
	src := sourceTree(t, "The Beatles", "Aphex Twin", "Burial")
	dst := t.TempDir()

	fake := &fakeRunner{failFor: map[string]error{
		"Aphex Twin": errors.New("connection reset"),
	}}
	m := New(1, nil)
	m.run = fake.run

	summary, err := m.Sync(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("batch should continue past a failed transfer, got %v", err)
	}
	if summary.Succeeded() != 2 || summary.Failed() != 1 {
		t.Errorf("summary = %d ok / %d failed, want 2/1", summary.Succeeded(), summary.Failed())
	}

	for _, r := range summary.Results {
		if r.Name == "Aphex Twin" && r.Err == nil {
			t.Error("failed directory recorded without error")
		}
	}
}

func TestSync_CancelledContext(t *testing.T) {
	src := sourceTree(t, "The Beatles")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeRunner{}
	m := New(1, nil)
	m.run = fake.run

	_, err := m.Sync(ctx, src, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Errorf("no transfers should start after cancellation, got %d", len(fake.calls))
	}
}

func TestSync_ReportsProgress(t *testing.T) {
	src := sourceTree(t, "The Beatles")

	var events []model.ProgressEvent
	m := New(1, func(e model.ProgressEvent) { events = append(events, e) })
	m.run = (&fakeRunner{}).run

	if _, err := m.Sync(context.Background(), src, t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if len(events) != 1 || events[0].Level != model.LevelSuccess {
		t.Errorf("events = %+v, want one success event", events)
	}
	if !strings.Contains(events[0].Message, "The Beatles") {
		t.Errorf("event message %q should name the directory", events[0].Message)
	}
}

func TestNew_ClampsConcurrency(t *testing.T) {
	if m := New(0, nil); m.concurrency != 1 {
		t.Errorf("concurrency = %d, want 1", m.concurrency)
	}
	if m := New(-3, nil); m.concurrency != 1 {
		t.Errorf("concurrency = %d, want 1", m.concurrency)
	}
	if m := New(4, nil); m.concurrency != 4 {
		t.Errorf("concurrency = %d, want 4", m.concurrency)
	}
}
