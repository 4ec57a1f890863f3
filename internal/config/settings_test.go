package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if settings.PlaylistExtension != ".m3u" {
		t.Errorf("PlaylistExtension = %q, want .m3u", settings.PlaylistExtension)
	}
	if settings.TargetPrefix != "../" {
		t.Errorf("TargetPrefix = %q, want ../", settings.TargetPrefix)
	}
	if settings.SyncConcurrency != 1 {
		t.Errorf("SyncConcurrency = %d, want 1", settings.SyncConcurrency)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"source_prefix": "D:/Music/"}`), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if settings.SourcePrefix != "D:/Music/" {
		t.Errorf("SourcePrefix = %q", settings.SourcePrefix)
	}
	if settings.PlaylistExtension != ".m3u" {
		t.Errorf("unset field lost its default: %q", settings.PlaylistExtension)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	settings := DefaultSettings()
	settings.SourcePrefix = "C:/Users/Tom/Music/iTunes/iTunes Media/Music/"
	settings.TargetPrefix = "/music/"
	settings.SyncConcurrency = 3
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.SourcePrefix != settings.SourcePrefix || loaded.SyncConcurrency != 3 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestPlaylistDirFor_DefaultsBesideTheXML(t *testing.T) {
	settings := DefaultSettings()

	got := settings.PlaylistDirFor(filepath.Join("/home", "tom", "iTunes", "iTunes Music Library.xml"))
	want := filepath.Join("/home", "tom", "iTunes", "extracted_playlists")
	if got != want {
		t.Errorf("PlaylistDirFor() = %q, want %q", got, want)
	}

	// An explicitly configured directory wins over the derived default.
	settings.PlaylistDir = "/srv/playlists"
	if got := settings.PlaylistDirFor("/home/tom/iTunes/iTunes Music Library.xml"); got != "/srv/playlists" {
		t.Errorf("configured dir not honored: %q", got)
	}

	settings.PlaylistDir = ""
	settings.LibraryXML = "/data/Library.xml"
	if got := settings.PlaylistOutputDir(); got != filepath.Join("/data", "extracted_playlists") {
		t.Errorf("PlaylistOutputDir() = %q", got)
	}
}

func TestToPrefixRule_NormalizesBackslashes(t *testing.T) {
	settings := DefaultSettings()
	settings.SourcePrefix = `C:\Music\`
	settings.TargetPrefix = "../"

	rule := settings.ToPrefixRule()
	if rule.Source != "C:/Music/" {
		t.Errorf("Source = %q, want forward slashes", rule.Source)
	}
	if rule.Target != "../" {
		t.Errorf("Target = %q", rule.Target)
	}
}
