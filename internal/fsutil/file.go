// Package fsutil provides filesystem helpers shared by the pipeline
// stages: directory creation, filename sanitization, prompt-path cleanup,
// and encoding-tolerant text reading.
package fsutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var (
	// Characters invalid in file names on at least one supported OS:
	// < > : " / \ | ? * plus control characters.
	invalidFileChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots     = regexp.MustCompile(`\.+$`)
	repeatedSpace    = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Road Trip: Vol 1/2") // Returns "Road Trip_ Vol 1_2"
//	SanitizeFileName("Chill...")           // Returns "Chill"
func SanitizeFileName(name string) string {
	name = invalidFileChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// CleanPromptPath normalizes a path string typed or drag-and-dropped into
// a prompt: surrounding whitespace and quote characters are stripped and
// the path is cleaned.
func CleanPromptPath(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	if s == "" {
		return ""
	}
	return filepath.Clean(s)
}

// ReadTextFile reads path as text. Content is decoded as UTF-8 first;
// when it is not valid UTF-8 the read is retried as Windows-1252, the
// usual encoding of playlist files exported on Windows, instead of
// failing the file.
func ReadTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
