package ladder

// Store defines the interface for interacting with the ladder's data.
type Store interface {
	// JoinPlayer appends a new player at the bottom of the ladder.
	JoinPlayer(name string) (*Player, error)
	// GetPlayer retrieves an active player by id.
	GetPlayer(id string) (*Player, error)
	// GetPlayerByName retrieves an active player by case-insensitive name match.
	GetPlayerByName(name string) (*Player, error)
	// ListPlayers returns all active players ordered by position.
	ListPlayers() ([]Player, error)
	// ListMatches returns all recorded matches, most recent first.
	ListMatches() ([]Match, error)
	// RecordMatch applies a match outcome in one transaction: it appends the
	// match record, shifts positions, updates win/loss and participation
	// counts, removes the source challenge and verifies the position invariant.
	RecordMatch(m *Match) error
	// DeactivatePlayer removes a player from the active ladder and closes the
	// position gap. Any open challenge involving the player is declined in
	// the same transaction. The player row is kept.
	DeactivatePlayer(id string) error
	// VerifyPositions checks that active positions form exactly 1..N.
	VerifyPositions() error
	Clear()
}
