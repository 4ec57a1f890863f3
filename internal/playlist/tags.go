package playlist

import "github.com/bogem/id3v2"

// ReadTags reads the artist and title frames from an MP3 file's ID3
// tags. Either value may come back empty when the frame is absent.
func ReadTags(path string) (artist, title string, err error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return "", "", err
	}
	defer tag.Close()

	return tag.Artist(), tag.Title(), nil
}
