package ladder

import (
	"database/sql"
	"sync"

	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// store handles all database operations for the ladder.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MaxParticipationPoints caps the credit a player earns for playing matches.
const MaxParticipationPoints = 3

// Player is one entry on the ladder. Positions are 1-based and form a
// contiguous permutation of 1..N among active players.
type Player struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Position            int    `json:"position"`
	ParticipationPoints int    `json:"participation_points"`
	Wins                int    `json:"wins"`
	Losses              int    `json:"losses"`
	JoinDate            int64  `json:"join_date"`
	IsActive            bool   `json:"is_active"`
}

// WinPercentage returns the player's win rate in whole percent.
func (p Player) WinPercentage() int {
	played := p.Wins + p.Losses
	if played == 0 {
		return 0
	}
	return int(float64(p.Wins)/float64(played)*100 + 0.5)
}

// Match is the immutable record of a played (or walked-over) challenge.
// Positions-before are kept so historic results stay interpretable after
// later ladder movement.
type Match struct {
	ID                 string         `json:"id"`
	ChallengeID        string         `json:"challenge_id"`
	WinnerID           string         `json:"winner_id"`
	LoserID            string         `json:"loser_id"`
	Games              []scoring.Game `json:"games,omitempty"`
	IsWalkover         bool           `json:"is_walkover"`
	Suspicious         bool           `json:"suspicious"`
	PlayedAt           int64          `json:"played_at"`
	WinnerPrevPosition int            `json:"winner_prev_position"`
	LoserPrevPosition  int            `json:"loser_prev_position"`
}
