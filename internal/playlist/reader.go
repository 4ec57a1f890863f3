package playlist

import (
	"bufio"
	"strings"

	"navitunes/internal/fsutil"
)

// ReadPaths returns the path lines of a playlist file, skipping blank
// lines and comment/metadata lines. The file is read with the usual
// UTF-8-first, Windows-1252-fallback decoding.
func ReadPaths(path string) ([]string, error) {
	content, err := fsutil.ReadTextFile(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}

	return paths, scanner.Err()
}
