package playlist

import (
	"fmt"
	"strings"

	"navitunes/internal/fsutil"
	"navitunes/internal/model"
)

// Namer derives output file names from playlist display names within one
// extraction run.
//
// Names are sanitized against filesystem-illegal characters, and a
// numeric suffix is appended when the same name has already been handed
// out in this run, so two playlists named "Favorites" and "favorites "
// both materialize instead of the second overwriting the first.
//
// Example:
//
//	namer := NewNamer(".m3u")
//	namer.FileName("Favorites")  // "Favorites.m3u"
//	namer.FileName("favorites ") // "favorites (2).m3u"
type Namer struct {
	ext  string
	used map[string]int
}

// NewNamer creates a Namer for the given playlist extension
// (".m3u" or ".m3u8"; empty defaults to ".m3u").
func NewNamer(ext string) *Namer {
	if ext == "" {
		ext = ".m3u"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Namer{ext: ext, used: make(map[string]int)}
}

// FileName returns the sanitized, collision-free file name for name.
// Collisions are tracked case-insensitively because the usual target
// filesystems treat names case-insensitively too.
func (n *Namer) FileName(name string) string {
	base := fsutil.SanitizeFileName(name)
	if base == "" {
		base = "Untitled"
	}

	key := strings.ToLower(base)
	n.used[key]++
	if count := n.used[key]; count > 1 {
		base = fmt.Sprintf("%s (%d)", base, count)
	}

	return base + n.ext
}

// RenderM3U builds extended-M3U content for the given tracks.
//
// The output is the #EXTM3U header, then per track an #EXTINF line
// (duration in seconds, artist, title) followed by the track's path,
// all with LF line endings:
//
//	#EXTM3U
//	#EXTINF:259,The Beatles - Come Together
//	C:/Music/01 Come Together.mp3
//
// When backfillTags is set and the document supplied no artist or title
// for a track, the values are read from the media file's ID3 tags if the
// file is locally readable. Unknown metadata falls back to
// "Unknown Artist" / "Unknown Track", and unknown durations to -1.
func RenderM3U(tracks []*model.Track, backfillTags bool) string {
	var sb strings.Builder

	sb.WriteString("#EXTM3U\n")

	for _, track := range tracks {
		artist, title := track.Artist, track.Name
		if backfillTags && (artist == "" || title == "") {
			if tagArtist, tagTitle, err := ReadTags(track.Location); err == nil {
				if artist == "" {
					artist = tagArtist
				}
				if title == "" {
					title = tagTitle
				}
			}
		}
		if artist == "" {
			artist = "Unknown Artist"
		}
		if title == "" {
			title = "Unknown Track"
		}

		fmt.Fprintf(&sb, "#EXTINF:%d,%s - %s\n", track.DurationSeconds(), artist, title)
		sb.WriteString(track.Location + "\n")
	}

	return sb.String()
}
