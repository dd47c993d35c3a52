package store

import (
	"context"
	"errors"
	"testing"

	"github.com/mgallois/lyricparty/internal/catalog"
	"github.com/mgallois/lyricparty/internal/game"
	"github.com/mgallois/lyricparty/internal/lyrics"
)

func session(t *testing.T, name string) *game.Session {
	t.Helper()
	c := catalog.New()
	_, err := c.AddSong(catalog.Input{
		Title:    "Song",
		Category: "Rock",
		MediaRef: "youtube:test",
		Lines:    []lyrics.Line{{Index: 0, Text: "caché"}},
		Hidden:   []int{0},
	})
	if err != nil {
		t.Fatalf("AddSong: %v", err)
	}
	s, err := game.New(name, []game.Player{{Username: "Alice"}}, c)
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return s
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	first := session(t, "Première")
	second := session(t, "Deuxième")
	if err := m.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Save(ctx, second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := m.Get(ctx, first.ID())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != first {
		t.Error("Get returned a different session instance")
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("missing id: err = %v, want game.ErrNotFound", err)
	}

	all, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0] != first || all[1] != second {
		t.Errorf("List order wrong: %v", all)
	}

	// Re-saving must not duplicate the entry.
	_ = m.Save(ctx, first)
	if all, _ := m.List(ctx); len(all) != 2 {
		t.Errorf("re-save duplicated: %d entries", len(all))
	}
}
