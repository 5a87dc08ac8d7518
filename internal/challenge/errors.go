package challenge

import "errors"

var (
	// ErrNotFound is returned when the challenge id is unknown.
	ErrNotFound = errors.New("challenge not found")
	// ErrPlayerBusy is returned when either party already holds a pending or
	// accepted challenge.
	ErrPlayerBusy = errors.New("player already has an open challenge")
	// ErrDuplicatePending is returned when an identical pending challenge
	// (same pair, same direction) already exists.
	ErrDuplicatePending = errors.New("an identical pending challenge already exists")
	// ErrInvalidState is returned for transitions that are not legal from the
	// challenge's current status.
	ErrInvalidState = errors.New("challenge is not in a state that allows this operation")
	// ErrInvalidDirection is returned when the challenger is not ranked below
	// (numerically greater position than) the challenged player.
	ErrInvalidDirection = errors.New("players may only challenge someone ranked above them")
)
