// internal/catalog/catalog.go
//
// In-memory song/category catalog.
// Responsibilities:
//   - Song CRUD with validation (title, media ref, lyric lines, hidden set).
//   - Category maintenance: categories are names, membership is by string
//     equality on Song.Category. Renaming rewrites every member song and
//     merges silently when the target name already exists. Deleting a
//     category deletes its member songs (destructive, no undo).
//   - Playable-category listing for the game engine: a category is playable
//     when it has at least one song; the "" pseudo-category (uncategorized
//     songs) is never playable.
//
// Concurrency-safe via RWMutex. Callers always receive deep copies of songs;
// the catalog's own state can only change through the operations here.

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mgallois/lyricparty/internal/lyrics"
)

// Error kinds reported by catalog operations.
// Callers discriminate with errors.Is.
var (
	ErrValidation = errors.New("invalid song or category data")
	ErrNotFound   = errors.New("not found")
)

// Song is one playable song with its lyric lines and hidden-word selection.
type Song struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Category string        `json:"category"` // "" means uncategorized
	MediaRef string        `json:"mediaRef"` // opaque external media locator
	Lines    []lyrics.Line `json:"lines"`
	Hidden   []int         `json:"hiddenLineIndices"` // ascending, deduplicated
}

// ExpectedWords returns the hidden words of the song: the tokens of every
// hidden line, in ascending line order, concatenated.
func (s *Song) ExpectedWords() []string {
	var words []string
	for _, idx := range s.Hidden {
		words = append(words, lyrics.Tokenize(s.Lines[idx].Text)...)
	}
	return words
}

// clone returns a deep copy of the song.
func (s *Song) clone() *Song {
	cp := *s
	cp.Lines = append([]lyrics.Line(nil), s.Lines...)
	cp.Hidden = append([]int(nil), s.Hidden...)
	return &cp
}

// Input carries the caller-supplied fields for adding or updating a song.
type Input struct {
	Title    string
	Category string
	MediaRef string
	Lines    []lyrics.Line
	Hidden   []int
}

// Catalog holds songs and category names.
type Catalog struct {
	mu    sync.RWMutex
	songs map[string]*Song
	order []string            // song IDs in insertion order, for stable listings
	cats  map[string]struct{} // known category names (may be empty of songs)
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		songs: make(map[string]*Song),
		cats:  make(map[string]struct{}),
	}
}

// validate checks an Input and returns the normalized hidden index set.
func validate(in Input) ([]int, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(in.MediaRef) == "" {
		return nil, fmt.Errorf("%w: media reference is required", ErrValidation)
	}
	if err := lyrics.Validate(in.Lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(in.Hidden) == 0 {
		return nil, fmt.Errorf("%w: at least one hidden line is required", ErrValidation)
	}
	seen := make(map[int]struct{}, len(in.Hidden))
	hidden := make([]int, 0, len(in.Hidden))
	for _, idx := range in.Hidden {
		if idx < 0 || idx >= len(in.Lines) {
			return nil, fmt.Errorf("%w: hidden line index %d out of range", ErrValidation, idx)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		hidden = append(hidden, idx)
	}
	sort.Ints(hidden)
	return hidden, nil
}

// build assembles a Song from a validated Input, flagging hidden lines.
func build(id string, in Input, hidden []int) *Song {
	lines := append([]lyrics.Line(nil), in.Lines...)
	for i := range lines {
		lines[i].Hidden = false
	}
	for _, idx := range hidden {
		lines[idx].Hidden = true
	}
	return &Song{
		ID:       id,
		Title:    strings.TrimSpace(in.Title),
		Category: strings.TrimSpace(in.Category),
		MediaRef: strings.TrimSpace(in.MediaRef),
		Lines:    lines,
		Hidden:   hidden,
	}
}

// AddSong validates and stores a new song, registering its category.
func (c *Catalog) AddSong(in Input) (*Song, error) {
	hidden, err := validate(in)
	if err != nil {
		return nil, err
	}
	s := build(uuid.NewString(), in, hidden)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.songs[s.ID] = s
	c.order = append(c.order, s.ID)
	if s.Category != "" {
		c.cats[s.Category] = struct{}{}
	}
	return s.clone(), nil
}

// UpdateSong replaces every field of an existing song.
func (c *Catalog) UpdateSong(id string, in Input) (*Song, error) {
	hidden, err := validate(in)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.songs[id]; !ok {
		return nil, fmt.Errorf("%w: song %s", ErrNotFound, id)
	}
	s := build(id, in, hidden)
	c.songs[id] = s
	if s.Category != "" {
		c.cats[s.Category] = struct{}{}
	}
	return s.clone(), nil
}

// DeleteSong removes a song. Its category name survives even when empty.
func (c *Catalog) DeleteSong(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.songs[id]; !ok {
		return fmt.Errorf("%w: song %s", ErrNotFound, id)
	}
	delete(c.songs, id)
	for i, sid := range c.order {
		if sid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Song returns a copy of the song with the given id.
func (c *Catalog) Song(id string) (*Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.songs[id]
	if !ok {
		return nil, fmt.Errorf("%w: song %s", ErrNotFound, id)
	}
	return s.clone(), nil
}

// Songs lists all songs in insertion order.
func (c *Catalog) Songs() []*Song {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Song, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.songs[id].clone())
	}
	return out
}

// AddCategory registers an empty category name.
func (c *Catalog) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cats[name] = struct{}{}
	return nil
}

// RenameCategory rewrites the category field on every member song.
// If the target name already exists, the two categories merge.
func (c *Catalog) RenameCategory(old, to string) error {
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("%w: new category name is required", ErrValidation)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cats[old]; !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, old)
	}
	for _, s := range c.songs {
		if s.Category == old {
			s.Category = to
		}
	}
	delete(c.cats, old)
	c.cats[to] = struct{}{}
	return nil
}

// DeleteCategory removes the category and every song tagged with it.
func (c *Catalog) DeleteCategory(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.cats[name]; !ok {
		return fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	delete(c.cats, name)
	kept := c.order[:0]
	for _, id := range c.order {
		if c.songs[id].Category == name {
			delete(c.songs, id)
		} else {
			kept = append(kept, id)
		}
	}
	c.order = kept
	return nil
}

// Categories lists all known category names, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.cats))
	for name := range c.cats {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PlayableCategories lists categories with at least one song, sorted.
// Uncategorized songs do not form a playable category.
func (c *Catalog) PlayableCategories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[string]int)
	for _, s := range c.songs {
		if s.Category != "" {
			counts[s.Category]++
		}
	}
	out := make([]string, 0, len(counts))
	for name := range counts {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SongsByCategory lists the songs in a category, in insertion order.
func (c *Catalog) SongsByCategory(name string) ([]*Song, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.cats[name]; !ok {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	var out []*Song
	for _, id := range c.order {
		if c.songs[id].Category == name {
			out = append(out, c.songs[id].clone())
		}
	}
	return out, nil
}

// Clone returns an independent deep copy of the catalog. Game sessions
// snapshot the songbook at creation so later edits cannot change a
// running game.
func (c *Catalog) Clone() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cp := New()
	for _, id := range c.order {
		cp.songs[id] = c.songs[id].clone()
		cp.order = append(cp.order, id)
	}
	for name := range c.cats {
		cp.cats[name] = struct{}{}
	}
	return cp
}
