package challenge

// Store defines the interface for interacting with challenge data.
type Store interface {
	// Create inserts a new pending challenge. The duplicate-pending and
	// player-busy checks run inside the same transaction that inserts the
	// row, so two concurrent creates involving the same player cannot both
	// succeed.
	Create(ch *Challenge) error
	// Get retrieves a challenge by id.
	Get(id string) (*Challenge, error)
	// ActiveForPlayer returns the player's pending or accepted challenge, or
	// nil if the player has none.
	ActiveForPlayer(playerID string) (*Challenge, error)
	// ListActive returns all pending and accepted challenges.
	ListActive() ([]Challenge, error)
	// ListAll returns every stored challenge, newest first.
	ListAll() ([]Challenge, error)
	// SetStatus transitions a challenge from one status to another. It fails
	// with ErrInvalidState when the challenge is not currently in `from`,
	// which makes repeated sweeps idempotent.
	SetStatus(id string, from, to Status) error
	// MarkNotified records that a notification was sent, at most once per kind.
	MarkNotified(id string, kind NotificationKind, sentAt int64) error
	Clear()
}
