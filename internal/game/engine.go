// internal/game/engine.go
//
// Game session state machine.
// Responsibilities:
//   - Own one game's roster, round counter, turn pointer, played-category
//     set, and per-player scores.
//   - Enforce the turn protocol: select category → select song → submit
//     attempt → complete category → advance turn.
//   - Enforce game invariants: strict round-robin player order, each
//     category played at most once per game, single attempt per turn,
//     finished is terminal.
//
// Every mutation goes through a method here and is guarded by the session
// mutex, serializing concurrent requests for the same game id. A transition
// either fully applies or fails without touching session state. Scoring
// awards one point per fully-correct attempt; the 0–100 match score is
// reported to the UI but does not feed the leaderboard.

package game

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mgallois/lyricparty/internal/catalog"
	"github.com/mgallois/lyricparty/internal/match"
)

// Session is one game. All fields are private; reads go through Snapshot.
type Session struct {
	mu sync.Mutex

	id      string
	name    string
	players []Player
	catalog *catalog.Catalog

	state     State
	round     int
	playerIdx int
	playable  []string // playable categories, frozen at creation
	played    map[string]struct{}
	scores    map[string]int

	turn turnState
}

// turnState tracks the current player's category→song→attempt cycle.
// Zeroed by AdvanceTurn.
type turnState struct {
	category  string
	songID    string
	scored    bool
	completed bool
}

// New creates a session in the waiting state, snapshotting the songbook so
// later catalog edits cannot affect the running game.
func New(name string, players []Player, songbook *catalog.Catalog) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: game name is required", ErrValidation)
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%w: at least one player is required", ErrValidation)
	}
	roster := make([]Player, 0, len(players))
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		p.Username = strings.TrimSpace(p.Username)
		if p.Username == "" {
			return nil, fmt.Errorf("%w: player username is required", ErrValidation)
		}
		if _, dup := seen[p.Username]; dup {
			return nil, fmt.Errorf("%w: duplicate username %q", ErrValidation, p.Username)
		}
		seen[p.Username] = struct{}{}
		roster = append(roster, p)
	}

	snap := songbook.Clone()
	playable := snap.PlayableCategories()
	if len(playable) == 0 {
		return nil, fmt.Errorf("%w: no playable categories", ErrValidation)
	}

	scores := make(map[string]int, len(roster))
	for _, p := range roster {
		scores[p.Username] = 0
	}

	return &Session{
		id:       uuid.NewString(),
		name:     strings.TrimSpace(name),
		players:  roster,
		catalog:  snap,
		state:    StateWaiting,
		playable: playable,
		played:   make(map[string]struct{}),
		scores:   scores,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Start moves the session from waiting to playing. Round one, first
// roster entry up.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateWaiting {
		return fmt.Errorf("%w: cannot start a %s game", ErrIllegalState, s.state)
	}
	s.state = StatePlaying
	s.round = 1
	s.playerIdx = 0
	return nil
}

// SelectCategory opens the current turn with a category and returns its
// songs. Re-selecting before a song is scored is allowed (the player may
// change their mind); selection does not mark the category played.
func (s *Session) SelectCategory(name string) ([]*catalog.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return nil, fmt.Errorf("%w: game is %s", ErrIllegalState, s.state)
	}
	if s.turn.scored || s.turn.completed {
		return nil, fmt.Errorf("%w: turn already in progress", ErrIllegalState)
	}
	if !s.isPlayable(name) {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	if _, done := s.played[name]; done {
		return nil, fmt.Errorf("%w: category %q already played", ErrIllegalState, name)
	}
	songs, err := s.catalog.SongsByCategory(name)
	if err != nil {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	if s.turn.category != name {
		s.turn.songID = ""
	}
	s.turn.category = name
	return songs, nil
}

// SelectSong picks the song to play from the turn's selected category.
func (s *Session) SelectSong(songID string) (*catalog.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return nil, fmt.Errorf("%w: game is %s", ErrIllegalState, s.state)
	}
	if s.turn.category == "" {
		return nil, fmt.Errorf("%w: no category selected", ErrIllegalState)
	}
	if s.turn.scored || s.turn.completed {
		return nil, fmt.Errorf("%w: turn already in progress", ErrIllegalState)
	}
	song, err := s.catalog.Song(songID)
	if err != nil {
		return nil, fmt.Errorf("%w: song %s", ErrNotFound, songID)
	}
	if song.Category != s.turn.category {
		return nil, fmt.Errorf("%w: song %q is not in category %q", ErrIllegalState, song.Title, s.turn.category)
	}
	s.turn.songID = songID
	return song, nil
}

// SubmitAttempt scores the attempt against the selected song's hidden
// words. One submission per turn; a fully-correct attempt earns the
// current player one point.
func (s *Session) SubmitAttempt(songID string, attempt []string) (match.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return match.Result{}, fmt.Errorf("%w: game is %s", ErrIllegalState, s.state)
	}
	if s.turn.songID == "" {
		return match.Result{}, fmt.Errorf("%w: no song selected", ErrIllegalState)
	}
	if s.turn.songID != songID {
		return match.Result{}, fmt.Errorf("%w: song %s is not the selected song", ErrIllegalState, songID)
	}
	if s.turn.scored {
		return match.Result{}, fmt.Errorf("%w: attempt already submitted this turn", ErrIllegalState)
	}
	song, err := s.catalog.Song(songID)
	if err != nil {
		return match.Result{}, fmt.Errorf("%w: song %s", ErrNotFound, songID)
	}

	res := match.Evaluate(song.ExpectedWords(), attempt)
	if res.Correct {
		s.scores[s.players[s.playerIdx].Username]++
	}
	s.turn.scored = true
	return res, nil
}

// CompleteCategory marks the turn's category as played for the rest of
// the game. The engine enforces this even though the UI disables played
// categories.
func (s *Session) CompleteCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return fmt.Errorf("%w: game is %s", ErrIllegalState, s.state)
	}
	if s.turn.completed {
		return fmt.Errorf("%w: turn already completed", ErrIllegalState)
	}
	if s.turn.category != name {
		return fmt.Errorf("%w: category %q was not selected this turn", ErrIllegalState, name)
	}
	s.played[name] = struct{}{}
	s.turn.completed = true
	return nil
}

// AdvanceTurn hands play to the next player in roster order. Wrapping the
// roster increments the round; once every category has been played the
// session finishes.
func (s *Session) AdvanceTurn() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePlaying {
		return fmt.Errorf("%w: game is %s", ErrIllegalState, s.state)
	}
	if !s.turn.completed {
		return fmt.Errorf("%w: current turn is not completed", ErrIllegalState)
	}
	s.turn = turnState{}
	s.playerIdx = (s.playerIdx + 1) % len(s.players)
	if s.playerIdx == 0 {
		s.round++
	}
	if len(s.played) == len(s.playable) {
		s.state = StateFinished
	}
	return nil
}

// Snapshot returns a consistent copy of the session for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores := make(map[string]int, len(s.scores))
	for k, v := range s.scores {
		scores[k] = v
	}
	var remaining, played []string
	for _, name := range s.playable {
		if _, done := s.played[name]; done {
			played = append(played, name)
		} else {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(played)

	current := ""
	if s.state == StatePlaying {
		current = s.players[s.playerIdx].Username
	}

	return Snapshot{
		ID:               s.id,
		Name:             s.name,
		State:            s.state,
		CurrentPlayer:    current,
		CurrentRound:     s.round,
		Players:          append([]Player(nil), s.players...),
		Scores:           scores,
		Categories:       remaining,
		PlayedCategories: played,
	}
}

// isPlayable reports whether name was a playable category at creation.
func (s *Session) isPlayable(name string) bool {
	for _, c := range s.playable {
		if c == name {
			return true
		}
	}
	return false
}
