package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-list", "normal-list"},
		{"list:with:colons", "list_with_colons"},
		{"list<with>brackets", "list_with_brackets"},
		{"list/with\\slashes", "list_with_slashes"},
		{"list|with|pipes", "list_with_pipes"},
		{"list?with*wildcards", "list_with_wildcards"},
		{"list\"with\"quotes", "list_with_quotes"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeFileName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanPromptPath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "/music/lists", "/music/lists"},
		{"surrounding spaces", "  /music/lists  ", "/music/lists"},
		{"double quotes", `"/music/my lists"`, "/music/my lists"},
		{"single quotes", "'/music/lists'", "/music/lists"},
		{"redundant separators", "/music//lists/", "/music/lists"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanPromptPath(tt.input); got != tt.want {
				t.Errorf("CleanPromptPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestReadTextFile_UTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	content := "#EXTM3U\nBeyoncé/Halo.mp3\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("ReadTextFile failed: %v", err)
	}
	if got != content {
		t.Errorf("got %q, want %q", got, content)
	}
}

func TestReadTextFile_Windows1252Fallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.m3u")
	// "Beyoncé" with a latin-1 encoded é (0xE9), invalid as UTF-8.
	raw := []byte{'B', 'e', 'y', 'o', 'n', 'c', 0xE9, '\n'}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTextFile(path)
	if err != nil {
		t.Fatalf("ReadTextFile failed: %v", err)
	}
	if got != "Beyoncé\n" {
		t.Errorf("got %q, want %q", got, "Beyoncé\n")
	}
}

func TestReadTextFile_Missing(t *testing.T) {
	_, err := ReadTextFile(filepath.Join(t.TempDir(), "absent.m3u"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEnsureDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("directory not created: %v", err)
	}
	// Second call on an existing directory is not an error.
	if err := EnsureDir(path); err != nil {
		t.Errorf("EnsureDir on existing dir: %v", err)
	}
}
