package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"navitunes/internal/fsutil"
	"navitunes/internal/model"
)

// OutputDirName is the subdirectory created inside the input directory
// for converted copies. Originals are never touched.
const OutputDirName = "converted_for_linux"

// Converter applies one PrefixRule to playlist files.
//
// The per-line transformation is a pure function; the batch runner adds
// file I/O, per-file error collection, and progress reporting around it.
type Converter struct {
	rule model.PrefixRule

	processed atomic.Int32
	total     atomic.Int32

	onProgress func(model.ProgressEvent)
}

// New creates a Converter for rule. onProgress may be nil.
func New(rule model.PrefixRule, onProgress func(model.ProgressEvent)) *Converter {
	return &Converter{rule: rule, onProgress: onProgress}
}

// Candidates lists the playlist files in dir (non-recursive), sorted by
// name. Both .m3u and .m3u8 extensions qualify, case-insensitively.
func Candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".m3u", ".m3u8":
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// IsTrackLine reports whether line counts as a track: non-empty and not
// a comment/metadata line.
func IsTrackLine(line string) bool {
	return line != "" && !strings.HasPrefix(line, "#")
}

// ConvertLine rewrites one playlist line.
//
// Empty lines and comment lines pass through unchanged. Path lines get
// backslashes converted to forward slashes, then the rule's source
// prefix replaced with its target when it matches at the start of the
// line (case-insensitively), then the strip subpath removed from the
// remainder. A path line whose prefix doesn't match keeps its normalized
// separators and nothing else changes.
func (c *Converter) ConvertLine(line string) string {
	if !IsTrackLine(line) {
		return line
	}

	line = strings.ReplaceAll(line, `\`, "/")

	rest, matched := trimPrefixFold(line, c.rule.Source)
	if !matched {
		return line
	}
	if c.rule.StripSubpath != "" {
		rest = removeFold(rest, c.rule.StripSubpath)
	}
	return c.rule.Target + rest
}

// Run converts every candidate file in dir into dir/converted_for_linux
// and returns the per-file summary.
//
// Per-file errors (open, decode, write) are recorded and the batch
// continues; only a failure to create the output directory itself is
// fatal. An interrupt takes effect between files, never mid-file.
func (c *Converter) Run(ctx context.Context, dir string) (model.RunSummary, error) {
	var summary model.RunSummary

	names, err := Candidates(dir)
	if err != nil {
		return summary, err
	}

	outDir := filepath.Join(dir, OutputDirName)
	if err := fsutil.EnsureDir(outDir); err != nil {
		return summary, fmt.Errorf("creating output directory: %w", err)
	}

	c.processed.Store(0)
	c.total.Store(int32(len(names)))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := c.convertFile(dir, outDir, name)
		summary.Add(result)
		c.processed.Add(1)

		if result.Err != nil {
			c.progress(fmt.Sprintf("%s: %v", name, result.Err), model.LevelError)
		} else {
			c.progress(fmt.Sprintf("Fixed %s (%d tracks)", name, result.Resolved), model.LevelSuccess)
		}
	}

	return summary, nil
}

// convertFile transforms one playlist file. The converted content is
// fully assembled in memory before anything is written, so an
// interrupted run never leaves a half-written output file.
func (c *Converter) convertFile(dir, outDir, name string) model.FileResult {
	result := model.FileResult{Name: name}

	content, err := fsutil.ReadTextFile(filepath.Join(dir, name))
	if err != nil {
		result.Err = err
		return result
	}

	lines := splitLines(content)
	for i, line := range lines {
		if IsTrackLine(line) {
			result.Resolved++
		}
		lines[i] = c.ConvertLine(line)
	}
	result.Total = result.Resolved

	out := strings.Join(lines, "\n")
	if err := os.WriteFile(filepath.Join(outDir, name), []byte(out), 0644); err != nil {
		result.Err = err
	}
	return result
}

// Progress returns how many files have been converted so far and how
// many the run covers in total.
func (c *Converter) Progress() (done, total int32) {
	return c.processed.Load(), c.total.Load()
}

func (c *Converter) progress(message string, level model.ProgressLevel) {
	if c.onProgress != nil {
		c.onProgress(model.ProgressEvent{Message: message, Level: level})
	}
}

// splitLines splits on LF and strips trailing CR from each line, so
// mixed or Windows line endings never leak into output. Joining the
// result with LF restores any trailing newline the input had.
func splitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}

// trimPrefixFold strips prefix from s when s starts with it,
// case-insensitively. Matching compares equal byte lengths, which holds
// for the ASCII drive-letter prefixes this tool works with; a prefix
// that doesn't match this way is reported as no match and the line is
// left unconverted.
func trimPrefixFold(s, prefix string) (string, bool) {
	if prefix == "" || len(s) < len(prefix) {
		return s, false
	}
	if !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// removeFold removes the first case-insensitive occurrence of sub from
// s. A sliding EqualFold window keeps offsets aligned to s itself, so
// characters whose case fold changes byte length never shift the cut
// point. Like trimPrefixFold, matching compares equal byte lengths.
func removeFold(s, sub string) string {
	if sub == "" {
		return s
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return s[:i] + s[i+len(sub):]
		}
	}
	return s
}
