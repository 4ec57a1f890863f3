// Package convert rewrites the file paths inside playlist files so
// playlists exported on Windows resolve on a Linux music server.
//
// Line handling is determined solely by the first character of each
// line: empty lines pass through empty, lines starting with '#' are
// comment/metadata lines and pass through byte-identical (only line
// endings are normalized), and everything else is a path line.
//
// Path lines get their backslashes converted to forward slashes, then an
// anchored case-insensitive prefix substitution per the configured
// PrefixRule, then optionally a library-internal subpath fragment
// removed. Lines whose prefix doesn't match are left otherwise
// unconverted but still counted as tracks.
//
// The batch runner writes converted copies into a subdirectory of the
// input directory and never mutates the originals. Running it twice over
// the same inputs and rule produces byte-identical output.
package convert
