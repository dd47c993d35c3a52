package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mgallois/lyricparty/internal/lyrics"
)

func input(title, category string, hidden ...int) Input {
	return Input{
		Title:    title,
		Category: category,
		MediaRef: "youtube:test",
		Lines: []lyrics.Line{
			{Index: 0, TimeMs: 1_000, Text: "Première ligne"},
			{Index: 1, TimeMs: 2_000, Text: "Deuxième ligne cachée"},
			{Index: 2, TimeMs: 3_000, Text: "Troisième ligne"},
		},
		Hidden: hidden,
	}
}

func TestAddSongValidation(t *testing.T) {
	c := New()
	cases := map[string]Input{
		"empty title": func() Input {
			in := input("  ", "Rock", 1)
			return in
		}(),
		"empty media ref": func() Input {
			in := input("Song", "Rock", 1)
			in.MediaRef = ""
			return in
		}(),
		"no lines": {Title: "Song", MediaRef: "x", Hidden: []int{0}},
		"no hidden lines": func() Input {
			in := input("Song", "Rock")
			return in
		}(),
		"hidden index out of range": func() Input {
			in := input("Song", "Rock", 7)
			return in
		}(),
		"negative hidden index": func() Input {
			in := input("Song", "Rock", -1)
			return in
		}(),
	}
	for name, in := range cases {
		if _, err := c.AddSong(in); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", name, err)
		}
	}
	if len(c.Songs()) != 0 {
		t.Error("rejected songs were stored")
	}
}

func TestAddSongFlagsHiddenLines(t *testing.T) {
	c := New()
	s, err := c.AddSong(input("Song", "Rock", 1, 1, 0)) // duplicates collapse, order normalizes
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	if !reflect.DeepEqual(s.Hidden, []int{0, 1}) {
		t.Errorf("hidden = %v, want [0 1]", s.Hidden)
	}
	if !s.Lines[0].Hidden || !s.Lines[1].Hidden || s.Lines[2].Hidden {
		t.Errorf("hidden flags wrong: %+v", s.Lines)
	}
}

func TestExpectedWords(t *testing.T) {
	c := New()
	s, err := c.AddSong(input("Song", "Rock", 0, 2))
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	want := []string{"Première", "ligne", "Troisième", "ligne"}
	if got := s.ExpectedWords(); !reflect.DeepEqual(got, want) {
		t.Errorf("ExpectedWords() = %v, want %v", got, want)
	}
}

func TestUpdateSongReplacesEverything(t *testing.T) {
	c := New()
	s, _ := c.AddSong(input("Old", "Rock", 1))

	in := input("New", "Pop", 0)
	updated, err := c.UpdateSong(s.ID, in)
	if err != nil {
		t.Fatalf("UpdateSong: %v", err)
	}
	if updated.Title != "New" || updated.Category != "Pop" {
		t.Errorf("update did not apply: %+v", updated)
	}
	if !reflect.DeepEqual(updated.Hidden, []int{0}) {
		t.Errorf("hidden = %v, want [0]", updated.Hidden)
	}

	if _, err := c.UpdateSong("missing", in); !errors.Is(err, ErrNotFound) {
		t.Errorf("update of unknown song: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSong(t *testing.T) {
	c := New()
	s, _ := c.AddSong(input("Song", "Rock", 1))
	if err := c.DeleteSong(s.ID); err != nil {
		t.Fatalf("DeleteSong: %v", err)
	}
	if _, err := c.Song(s.ID); !errors.Is(err, ErrNotFound) {
		t.Error("deleted song still retrievable")
	}
	if err := c.DeleteSong(s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestRenameCategoryMerges(t *testing.T) {
	c := New()
	_, _ = c.AddSong(input("A", "Rock", 1))
	_, _ = c.AddSong(input("B", "Rock", 1))
	_, _ = c.AddSong(input("C", "Pop", 1))

	if err := c.RenameCategory("Rock", "Pop"); err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if got := c.Categories(); !reflect.DeepEqual(got, []string{"Pop"}) {
		t.Errorf("categories = %v, want [Pop]", got)
	}
	songs, err := c.SongsByCategory("Pop")
	if err != nil {
		t.Fatalf("SongsByCategory: %v", err)
	}
	if len(songs) != 3 {
		t.Errorf("merged category has %d songs, want 3", len(songs))
	}

	if err := c.RenameCategory("Ghost", "X"); !errors.Is(err, ErrNotFound) {
		t.Errorf("rename of unknown category: err = %v, want ErrNotFound", err)
	}
	if err := c.RenameCategory("Pop", "  "); !errors.Is(err, ErrValidation) {
		t.Errorf("rename to blank: err = %v, want ErrValidation", err)
	}
}

func TestDeleteCategoryCascades(t *testing.T) {
	c := New()
	a, _ := c.AddSong(input("A", "Rock", 1))
	b, _ := c.AddSong(input("B", "Rock", 1))
	keep, _ := c.AddSong(input("C", "Pop", 1))

	if err := c.DeleteCategory("Rock"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	for _, id := range []string{a.ID, b.ID} {
		if _, err := c.Song(id); !errors.Is(err, ErrNotFound) {
			t.Errorf("song %s survived category delete", id)
		}
	}
	if _, err := c.Song(keep.ID); err != nil {
		t.Error("song in another category was deleted")
	}
	if _, err := c.SongsByCategory("Rock"); !errors.Is(err, ErrNotFound) {
		t.Error("deleted category still queryable")
	}
}

func TestUncategorizedIsNotPlayable(t *testing.T) {
	c := New()
	_, _ = c.AddSong(input("Loose", "", 1))
	_, _ = c.AddSong(input("Tagged", "Rock", 1))

	if got := c.PlayableCategories(); !reflect.DeepEqual(got, []string{"Rock"}) {
		t.Errorf("playable = %v, want [Rock]", got)
	}
	if got := c.Categories(); !reflect.DeepEqual(got, []string{"Rock"}) {
		t.Errorf("categories = %v, want [Rock]", got)
	}
}

func TestEmptyCategoryIsListedButNotPlayable(t *testing.T) {
	c := New()
	if err := c.AddCategory("Métal"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	if got := c.Categories(); !reflect.DeepEqual(got, []string{"Métal"}) {
		t.Errorf("categories = %v", got)
	}
	if got := c.PlayableCategories(); len(got) != 0 {
		t.Errorf("playable = %v, want none", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	s, _ := c.AddSong(input("Song", "Rock", 1))

	snap := c.Clone()
	if err := c.DeleteCategory("Rock"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if _, err := snap.Song(s.ID); err != nil {
		t.Error("clone lost a song after the source changed")
	}
	if got := snap.PlayableCategories(); !reflect.DeepEqual(got, []string{"Rock"}) {
		t.Errorf("clone playable = %v, want [Rock]", got)
	}
}

func TestLoadSongbookEmbedded(t *testing.T) {
	c, err := LoadSongbook("")
	if err != nil {
		t.Fatalf("LoadSongbook: %v", err)
	}
	if len(c.Songs()) == 0 {
		t.Fatal("embedded songbook is empty")
	}
	if len(c.PlayableCategories()) == 0 {
		t.Fatal("embedded songbook has no playable categories")
	}
	for _, s := range c.Songs() {
		if len(s.ExpectedWords()) == 0 {
			t.Errorf("song %q has no hidden words", s.Title)
		}
	}
}
