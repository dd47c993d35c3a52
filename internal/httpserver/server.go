// internal/httpserver/server.go
//
// HTTP server wiring for the lyricparty backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Songbook endpoints: song CRUD and category management.
//   - Game endpoints: mounted under /games (see routes_game.go).
//   - Error translation: engine/catalog error kinds → HTTP status codes.
//
// Notes:
//   - The engine never logs; logging for persistence failures happens here.
//   - Raw LRC text is parsed into timestamped lines at this boundary, so the
//     catalog and engine only ever see structured lyric lines.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mgallois/lyricparty/internal/catalog"
	"github.com/mgallois/lyricparty/internal/game"
	"github.com/mgallois/lyricparty/internal/lyrics"
	"github.com/mgallois/lyricparty/internal/store"
)

// Server bundles router, live-session store, songbook, and DB handle.
type Server struct {
	r        *chi.Mux
	store    store.Store
	songbook *catalog.Catalog
	db       *sql.DB // may be nil; persistence is then skipped
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, songbook *catalog.Catalog, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, songbook: songbook, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"lyricparty","endpoints":["/health","/songs","/categories","/games"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- songbook management ---
	s.r.Post("/songs", s.handleAddSong)
	s.r.Get("/songs", s.handleListSongs)
	s.r.Put("/songs/{id}", s.handleUpdateSong)
	s.r.Delete("/songs/{id}", s.handleDeleteSong)

	s.r.Get("/categories", s.handleListCategories)
	s.r.Post("/categories", s.handleAddCategory)
	s.r.Get("/categories/{name}/songs", s.handleSongsByCategory)
	s.r.Post("/categories/{name}/rename", s.handleRenameCategory)
	s.r.Delete("/categories/{name}", s.handleDeleteCategory)

	// --- games ---
	s.mountGames(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ helpers ------------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps engine/catalog error kinds to HTTP status codes:
// not-found → 404, validation → 400, illegal transition → 409.
func writeErr(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrNotFound), errors.Is(err, catalog.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, game.ErrValidation), errors.Is(err, catalog.ErrValidation):
		code = http.StatusBadRequest
	case errors.Is(err, game.ErrIllegalState):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// ----------------------------- songbook ------------------------------------

// songReq is the payload for POST /songs and PUT /songs/{id}.
// LRC text is parsed here; hidden indices refer to the parsed line list.
type songReq struct {
	Title             string `json:"title"`
	Category          string `json:"category"`
	MediaRef          string `json:"mediaRef"`
	LRC               string `json:"lrc"`
	HiddenLineIndices []int  `json:"hiddenLineIndices"`
}

func (r songReq) toInput() catalog.Input {
	return catalog.Input{
		Title:    r.Title,
		Category: r.Category,
		MediaRef: r.MediaRef,
		Lines:    lyrics.ParseLRC(r.LRC),
		Hidden:   r.HiddenLineIndices,
	}
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	var req songReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	song, err := s.songbook.AddSong(req.toInput())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(s.songbook.Songs())
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	var req songReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	song, err := s.songbook.UpdateSong(chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(song)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	if err := s.songbook.DeleteSong(chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// categoryRow mirrors the category listing shape: name plus member song IDs.
type categoryRow struct {
	Name    string   `json:"name"`
	SongIDs []string `json:"songIds"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	out := []categoryRow{}
	for _, name := range s.songbook.Categories() {
		row := categoryRow{Name: name, SongIDs: []string{}}
		if songs, err := s.songbook.SongsByCategory(name); err == nil {
			for _, song := range songs {
				row.SongIDs = append(row.SongIDs, song.ID)
			}
		}
		out = append(out, row)
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.songbook.AddCategory(req.Name); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

func (s *Server) handleSongsByCategory(w http.ResponseWriter, r *http.Request) {
	songs, err := s.songbook.SongsByCategory(chi.URLParam(r, "name"))
	if err != nil {
		writeErr(w, err)
		return
	}
	if songs == nil {
		songs = []*catalog.Song{}
	}
	_ = json.NewEncoder(w).Encode(songs)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To string `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := s.songbook.RenameCategory(chi.URLParam(r, "name"), req.To); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"name": req.To})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.songbook.DeleteCategory(chi.URLParam(r, "name")); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}
