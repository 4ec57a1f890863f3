package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"navitunes/internal/model"
)

// DefaultPlaylistFolder is created beside the library document when no
// playlist output directory is configured.
const DefaultPlaylistFolder = "extracted_playlists"

// Settings holds all configuration options.
type Settings struct {
	// Extraction settings
	LibraryXML        string `json:"library_xml"`
	PlaylistDir       string `json:"playlist_dir"`
	PlaylistExtension string `json:"playlist_extension"`
	BackfillTags      bool   `json:"backfill_tags"`

	// Conversion settings
	SourcePrefix string `json:"source_prefix"`
	TargetPrefix string `json:"target_prefix"`
	StripSubpath string `json:"strip_subpath"`

	// Sync settings
	MusicSource     string `json:"music_source"`
	MusicDest       string `json:"music_dest"`
	SyncConcurrency int    `json:"sync_concurrency"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LibraryXML:        filepath.Join(homeDir, "Music", "iTunes", "iTunes Music Library.xml"),
		PlaylistExtension: ".m3u",
		BackfillTags:      false,

		TargetPrefix: "../",

		SyncConcurrency: 1,
	}
}

// Load reads settings from a JSON file. A missing file is not an error;
// defaults are returned so first runs work without any setup.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// PlaylistDirFor returns the playlist directory to use for the given
// library document: the configured directory when one is set, otherwise
// an extracted_playlists folder beside the document.
func (s *Settings) PlaylistDirFor(xmlPath string) string {
	if s.PlaylistDir != "" {
		return s.PlaylistDir
	}
	return filepath.Join(filepath.Dir(xmlPath), DefaultPlaylistFolder)
}

// PlaylistOutputDir is PlaylistDirFor applied to the configured library
// document path.
func (s *Settings) PlaylistOutputDir() string {
	return s.PlaylistDirFor(s.LibraryXML)
}

// ToPrefixRule converts the conversion settings to a PrefixRule.
func (s *Settings) ToPrefixRule() model.PrefixRule {
	return model.NewPrefixRule(s.SourcePrefix, s.TargetPrefix, s.StripSubpath)
}
