// Package playlist reads and writes extended-M3U playlist files.
//
// The writer emits the #EXTM3U header followed by an #EXTINF metadata
// line and a path line per track. The Namer derives collision-free,
// filesystem-safe file names from playlist display names. ReadTags can
// backfill artist/title metadata from a local MP3's ID3 tags when the
// library document carries none.
package playlist
