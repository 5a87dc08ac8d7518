package ladder

import "errors"

var (
	// ErrDuplicateName is returned when a joining player's name matches an
	// active player's name case-insensitively.
	ErrDuplicateName = errors.New("a player with that name is already on the ladder")
	// ErrPlayerNotFound is returned for lookups of unknown or inactive players.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrPositionsCorrupt is returned when the active positions do not form a
	// contiguous 1..N permutation. A ranking update that would cause this is
	// rolled back.
	ErrPositionsCorrupt = errors.New("ladder positions are not a contiguous 1..N permutation")
)
