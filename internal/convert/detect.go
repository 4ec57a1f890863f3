package convert

import (
	"errors"
	"path/filepath"
	"strings"

	"navitunes/internal/playlist"
)

// MediaRootFolder is the landmark component the detection heuristic
// looks for: the media root iTunes nests artist folders under.
const MediaRootFolder = "Music"

// Sample is one preview conversion: an input path line and what the
// current rule turns it into.
type Sample struct {
	Input  string
	Output string
}

// Preview returns up to n sample conversions taken from the first
// candidate file in dir. It is read-only and writes nothing; the
// interactive flow shows the samples before the operator confirms the
// batch.
func (c *Converter) Preview(dir string, n int) ([]Sample, error) {
	names, err := Candidates(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}

	paths, err := playlist.ReadPaths(filepath.Join(dir, names[0]))
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, line := range paths {
		samples = append(samples, Sample{Input: line, Output: c.ConvertLine(line)})
		if len(samples) == n {
			break
		}
	}
	return samples, nil
}

// DetectPrefix suggests a source prefix from the first path line of the
// first candidate playlist in dir.
//
// The heuristic takes everything up to and including the last "Music"
// component before the file name — the iTunes media root artist folders
// live under. When no landmark is present it falls back to everything
// before the final two components (assumed album and track).
//
// The result is a suggestion for the operator to confirm or override;
// callers must never apply it silently.
func DetectPrefix(dir string) (string, error) {
	names, err := Candidates(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", errors.New("no playlist files to inspect")
	}

	paths, err := playlist.ReadPaths(filepath.Join(dir, names[0]))
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", errors.New("playlist has no track lines")
	}

	first := strings.ReplaceAll(paths[0], `\`, "/")
	parts := strings.Split(first, "/")

	for i := len(parts) - 2; i >= 0; i-- {
		if strings.EqualFold(parts[i], MediaRootFolder) {
			return strings.Join(parts[:i+1], "/") + "/", nil
		}
	}

	if len(parts) > 2 {
		return strings.Join(parts[:len(parts)-2], "/") + "/", nil
	}
	return "", errors.New("could not infer a source prefix")
}
