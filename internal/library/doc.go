// Package library parses iTunes Library.xml exports and extracts user
// playlists from them.
//
// Loading builds two in-memory tables from the property-list document:
// tracks keyed by id, and playlists holding ordered id lists. The
// Extractor joins the two and writes one extended-M3U file per user
// playlist.
//
// A malformed document fails the whole load; there is no partial
// extraction. Everything after that point is per-playlist: an item whose
// id has no track, or whose track has no location, is silently skipped,
// and a playlist whose file cannot be written is counted as an error
// without aborting the run.
//
// Example:
//
//	lib, err := library.Load("Library.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ex := library.NewExtractor(lib, library.Options{}, nil)
//	summary, err := ex.Run(ctx, "extracted_playlists")
package library
