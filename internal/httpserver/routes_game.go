// internal/httpserver/routes_game.go
//
// HTTP routes for game sessions.
// Exposes endpoints under /games:
//   - POST /games                              → create a game from the current songbook
//   - GET  /games, GET /games/{id}             → session snapshots
//   - POST /games/{id}/start                   → waiting → playing
//   - POST /games/{id}/select_category         → open the turn with a category
//   - POST /games/{id}/select_song             → pick the song to play
//   - POST /games/{id}/attempt                 → submit the hidden-word attempt
//   - POST /games/{id}/complete_category       → mark the category played
//   - POST /games/{id}/next_turn               → rotate to the next player
//
// Live sessions are held in the memory store; SQLite rows are written
// best-effort on creation, start, and finish (history only, never load-bearing
// for game logic).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mgallois/lyricparty/internal/game"
	"github.com/mgallois/lyricparty/internal/match"
)

// mountGames registers all /games routes.
func (s *Server) mountGames(r chi.Router) {
	r.Route("/games", func(r chi.Router) {
		r.Post("/", s.handleCreateGame)
		r.Get("/", s.handleListGames)
		r.Get("/{id}", s.handleGetGame)
		r.Post("/{id}/start", s.handleStartGame)
		r.Post("/{id}/select_category", s.handleSelectCategory)
		r.Post("/{id}/select_song", s.handleSelectSong)
		r.Post("/{id}/attempt", s.handleAttempt)
		r.Post("/{id}/complete_category", s.handleCompleteCategory)
		r.Post("/{id}/next_turn", s.handleNextTurn)
	})
}

// session loads the session addressed by the {id} URL parameter.
func (s *Server) session(r *http.Request) (*game.Session, error) {
	return s.store.Get(r.Context(), chi.URLParam(r, "id"))
}

// -----------------------------------------------------------------------------
// POST /games

// createGameReq is the payload for POST /games.
type createGameReq struct {
	Name    string        `json:"name"`
	Players []game.Player `json:"players"`
}

// handleCreateGame builds a session from the current songbook snapshot and
// stores it. The songbook can keep evolving afterwards without touching the
// running game.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, err := game.New(req.Name, req.Players, s.songbook)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	// History row; non-fatal if it fails.
	if s.db != nil {
		now := time.Now().UTC().Format(time.RFC3339)
		if _, err := s.db.ExecContext(r.Context(),
			`INSERT INTO games (id, name, state, rounds, created_at) VALUES (?,?,?,0,?)`,
			sess.ID(), req.Name, string(game.StateWaiting), now); err != nil {
			log.Warn().Err(err).Str("gameId", sess.ID()).Msg("insert game row")
		}
	}

	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

// -----------------------------------------------------------------------------
// GET /games, GET /games/{id}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.store.List(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]game.Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.Snapshot())
	}
	_ = json.NewEncoder(w).Encode(out)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/start

func (s *Server) handleStartGame(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := sess.Start(); err != nil {
		writeErr(w, err)
		return
	}
	s.recordState(r.Context(), sess.ID(), string(game.StatePlaying))
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/select_category

type selectCategoryReq struct {
	Category string `json:"category"`
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req selectCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	songs, err := sess.SelectCategory(req.Category)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"songs": songs})
}

// -----------------------------------------------------------------------------
// POST /games/{id}/select_song

type selectSongReq struct {
	SongID string `json:"songId"`
}

func (s *Server) handleSelectSong(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req selectSongReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	song, err := sess.SelectSong(req.SongID)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(song)
}

// -----------------------------------------------------------------------------
// POST /games/{id}/attempt

// attemptReq is the payload for submitting a hidden-word attempt.
type attemptReq struct {
	SongID       string   `json:"songId"`
	AttemptWords []string `json:"attemptWords"`
}

// attemptRes couples the match verdict with the refreshed turn snapshot so
// the UI can render both without a second round trip.
type attemptRes struct {
	match.Result
	Game game.Snapshot `json:"game"`
}

func (s *Server) handleAttempt(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req attemptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	res, err := sess.SubmitAttempt(req.SongID, req.AttemptWords)
	if err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(attemptRes{Result: res, Game: sess.Snapshot()})
}

// -----------------------------------------------------------------------------
// POST /games/{id}/complete_category

func (s *Server) handleCompleteCategory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	var req selectCategoryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if err := sess.CompleteCategory(req.Category); err != nil {
		writeErr(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(sess.Snapshot())
}

// -----------------------------------------------------------------------------
// POST /games/{id}/next_turn

// handleNextTurn rotates the roster. When the rotation finishes the game,
// the final scores go to the history tables.
func (s *Server) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		writeErr(w, err)
		return
	}
	if err := sess.AdvanceTurn(); err != nil {
		writeErr(w, err)
		return
	}
	snap := sess.Snapshot()
	if snap.State == game.StateFinished {
		s.recordFinished(r.Context(), snap)
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// -----------------------------------------------------------------------------
// history persistence (best effort)

// recordState updates the history row's state column.
func (s *Server) recordState(ctx context.Context, id, state string) {
	if s.db == nil {
		return
	}
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET state=? WHERE id=?`, state, id); err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("update game state")
	}
}

// recordFinished closes the history row and writes the final scores.
func (s *Server) recordFinished(ctx context.Context, snap game.Snapshot) {
	if s.db == nil {
		return
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("begin finish tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`UPDATE games SET state=?, rounds=?, finished_at=? WHERE id=?`,
		string(snap.State), snap.CurrentRound, now, snap.ID); err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("finish game row")
	}
	for username, points := range snap.Scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO game_scores (game_id, username, points) VALUES (?,?,?)`,
			snap.ID, username, points); err != nil {
			log.Warn().Err(err).Str("gameId", snap.ID).Str("user", username).Msg("insert score row")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("gameId", snap.ID).Msg("commit finish tx")
	}
}
