// internal/game/errors.go
//
// Error kinds reported by session transitions. The HTTP layer maps these
// (together with the catalog's kinds) onto status codes; the engine itself
// never logs or retries. Failures are returned synchronously and leave
// the session unchanged.

package game

import "errors"

var (
	// ErrValidation reports malformed creation input (empty roster,
	// duplicate usernames, no playable categories).
	ErrValidation = errors.New("invalid game data")

	// ErrIllegalState reports a transition that is not legal for the
	// session's current state, such as selecting an already-played
	// category or submitting before selecting a song.
	ErrIllegalState = errors.New("illegal state transition")

	// ErrNotFound reports a reference to a song or category that does
	// not exist in the session's catalog.
	ErrNotFound = errors.New("not found")
)
