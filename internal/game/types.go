// internal/game/types.go
//
// Core type definitions for the game session engine.
// Defines:
//   - State: lifecycle of a session (waiting/playing/finished).
//   - Player: one roster entry.
//   - Snapshot: the read-only view of a session handed to the UI.

package game

// State represents the lifecycle phase of a session.
// Possible values:
//   - "waiting":  created, roster fixed, not yet started.
//   - "playing":  turns in progress.
//   - "finished": every category has been played; terminal.
type State string

const (
	StateWaiting  State = "waiting"
	StatePlaying  State = "playing"
	StateFinished State = "finished"
)

// Player is one roster entry. Usernames are unique within a session.
type Player struct {
	Username  string `json:"username"`
	AvatarRef string `json:"avatarRef,omitempty"`
}

// Snapshot is a consistent copy of the session state for rendering.
// The engine is the single source of truth; the UI holds no game state
// of its own and is driven entirely by snapshots.
type Snapshot struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	State            State          `json:"state"`
	CurrentPlayer    string         `json:"currentPlayer,omitempty"`
	CurrentRound     int            `json:"currentRound"`
	Players          []Player       `json:"players"`
	Scores           map[string]int `json:"scores"`
	Categories       []string       `json:"categories"` // still selectable
	PlayedCategories []string       `json:"playedCategories"`
}
