package library

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"howett.net/plist"

	"navitunes/internal/model"
)

// ErrMalformed is wrapped by Load when the library document cannot be
// decoded. Fatal for the extraction run; use errors.Is.
var ErrMalformed = errors.New("malformed library document")

// document mirrors the property-list structure of an iTunes library
// export, limited to the keys extraction needs. Entries carry many more
// keys; the decoder ignores the rest.
type document struct {
	Tracks    map[string]documentTrack `plist:"Tracks"`
	Playlists []documentPlaylist       `plist:"Playlists"`
}

type documentTrack struct {
	TrackID   int    `plist:"Track ID"`
	Name      string `plist:"Name"`
	Artist    string `plist:"Artist"`
	Album     string `plist:"Album"`
	TotalTime int    `plist:"Total Time"`
	Location  string `plist:"Location"`
}

type documentPlaylist struct {
	Name   string `plist:"Name"`
	Master bool   `plist:"Master"`

	// DistinguishedKind is a pointer because the key's presence alone
	// marks a built-in playlist, whatever its value.
	DistinguishedKind *int `plist:"Distinguished Kind"`

	Items []documentItem `plist:"Playlist Items"`
}

type documentItem struct {
	TrackID int `plist:"Track ID"`
}

// Library holds the track table and playlist list built from one
// library document. Both are read-only after Load returns.
type Library struct {
	// Tracks maps track id to track. Entries without a usable location
	// are present but unresolvable.
	Tracks map[int]*model.Track

	// Playlists holds every playlist in document order, built-in ones
	// included; filtering happens in UserPlaylists.
	Playlists []*model.Playlist
}

// Load parses the library document at path.
//
// A decode failure is fatal for the extraction run: no partial Library
// is ever returned, and the error wraps ErrMalformed when the document
// itself is at fault.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc document
	if _, err := plist.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing library document: %w: %v", ErrMalformed, err)
	}

	return fromDocument(&doc), nil
}

// fromDocument builds the track and playlist tables. Track ids come
// from the Tracks map key, falling back to the entry's own Track ID;
// entries yielding id 0 are skipped rather than failing the document.
func fromDocument(doc *document) *Library {
	lib := &Library{Tracks: make(map[int]*model.Track)}

	for key, entry := range doc.Tracks {
		id, err := strconv.Atoi(key)
		if err != nil {
			id = entry.TrackID
		}
		if id == 0 {
			continue
		}
		lib.Tracks[id] = &model.Track{
			ID:        id,
			Location:  DecodeLocation(entry.Location),
			Name:      entry.Name,
			Artist:    entry.Artist,
			Album:     entry.Album,
			TotalTime: entry.TotalTime,
		}
	}

	for _, entry := range doc.Playlists {
		pl := &model.Playlist{
			Name:          entry.Name,
			Master:        entry.Master,
			Distinguished: entry.DistinguishedKind != nil,
		}
		if pl.Name == "" {
			pl.Name = "Untitled Playlist"
		}
		for _, item := range entry.Items {
			if item.TrackID != 0 {
				pl.Items = append(pl.Items, item.TrackID)
			}
		}
		lib.Playlists = append(lib.Playlists, pl)
	}

	return lib
}

// DecodeLocation converts a file:// URI from the library document into a
// plain filesystem path: the scheme is dropped, percent-encoding is
// decoded, and the localhost host prefix iTunes writes on Windows is
// removed.
//
// Example:
//
//	DecodeLocation("file://localhost/C:/Music/01%20Come%20Together.mp3")
//	// Returns "C:/Music/01 Come Together.mp3"
func DecodeLocation(location string) string {
	if location == "" {
		return ""
	}

	location = strings.TrimPrefix(location, "file://")
	if decoded, err := url.PathUnescape(location); err == nil {
		location = decoded
	}
	location = strings.TrimPrefix(location, "localhost/")

	return location
}

// UserPlaylists returns the playlists with built-in lists filtered out,
// preserving document order.
func (l *Library) UserPlaylists() []*model.Playlist {
	var out []*model.Playlist
	for _, p := range l.Playlists {
		if p.Builtin() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Resolve maps a playlist's items onto tracks with usable locations.
// Input order is preserved; ids with no track, and tracks with no
// location, are skipped.
func (l *Library) Resolve(p *model.Playlist) []*model.Track {
	var tracks []*model.Track
	for _, id := range p.Items {
		track, ok := l.Tracks[id]
		if !ok || !track.Resolvable() {
			continue
		}
		tracks = append(tracks, track)
	}
	return tracks
}
