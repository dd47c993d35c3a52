// internal/catalog/seed.go
//
// Songbook loading.
//
// A songbook is a JSON file of songs with raw LRC text and hidden-line
// selections. LoadSongbook reads one from disk when a path is configured,
// and otherwise falls back to a small embedded default so the server is
// playable out of the box.

package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mgallois/lyricparty/internal/lyrics"
)

//go:embed songbook.json
var embeddedSongbook []byte

// songbookFile is the on-disk/embedded songbook shape.
type songbookFile struct {
	Songs []songbookEntry `json:"songs"`
}

type songbookEntry struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	MediaRef    string `json:"mediaRef"`
	LRC         string `json:"lrc"`
	HiddenLines []int  `json:"hiddenLines"`
}

// LoadSongbook builds a catalog from the songbook at path, or from the
// embedded default songbook when path is empty.
func LoadSongbook(path string) (*Catalog, error) {
	data := embeddedSongbook
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read songbook: %w", err)
		}
	}

	var file songbookFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse songbook: %w", err)
	}

	c := New()
	for _, e := range file.Songs {
		if _, err := c.AddSong(Input{
			Title:    e.Title,
			Category: e.Category,
			MediaRef: e.MediaRef,
			Lines:    lyrics.ParseLRC(e.LRC),
			Hidden:   e.HiddenLines,
		}); err != nil {
			return nil, fmt.Errorf("songbook entry %q: %w", e.Title, err)
		}
	}
	return c, nil
}
