// Package model defines the core data types shared across the
// extraction, conversion, and sync pipelines.
//
// The types are plain values: a Track is one library entry, a Playlist
// is a named ordered list of track ids, and a PrefixRule is the immutable
// per-run configuration for path rewriting. ProgressEvent and RunSummary
// are the shared reporting vocabulary the pipeline stages emit and the
// CLI/TUI front ends render.
package model
