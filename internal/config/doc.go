// Package config provides configuration management for navitunes.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Conversion to a PrefixRule for the path converter
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Library at ~/Music/iTunes/iTunes Music Library.xml
//	// Playlists written to extracted_playlists/ as .m3u
//	// One rsync transfer at a time
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.SourcePrefix = "C:/Users/Tom/Music/iTunes/iTunes Media/Music/"
//	err := settings.Save("/path/to/config.json")
package config
