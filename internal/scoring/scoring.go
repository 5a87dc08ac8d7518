// Package scoring implements the squash scoring rules used by the ladder:
// games to 11, win by two once the loser has reached 9, best of 5.
package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidScore    = errors.New("invalid game score")
	ErrTiedGame        = errors.New("game cannot end in a tie")
	ErrIncompleteMatch = errors.New("match incomplete: neither player has won 3 games")
	ErrExcessGames     = errors.New("too many games: match was already decided")
)

const (
	// GamesToWin is the number of game wins that decides a best-of-5 match.
	GamesToWin = 3
	// MaxGames is the longest possible best-of-5 match.
	MaxGames = 5
	// winningPoints is the minimum score a game winner must reach.
	winningPoints = 11
	// suspiciousPoints is the threshold above which a score is flagged for review.
	suspiciousPoints = 20
)

// Game holds the points of a single game, from the challenger's perspective.
type Game struct {
	ChallengerPoints int `json:"challenger_points"`
	ChallengedPoints int `json:"challenged_points"`
}

// Outcome is the resolved result of a full match.
type Outcome struct {
	ChallengerGames int
	ChallengedGames int
	ChallengerWon   bool
	// Suspicious is set when any game score exceeds 20 points. Such results
	// are accepted but flagged for review rather than rejected.
	Suspicious bool
}

// ValidateGame checks a single game score pair. A game is valid when the
// winner reaches at least 11 and leads by 2, except that a lead of 2 is only
// required once the loser has reached 9.
func ValidateGame(a, b int) error {
	if a < 0 || b < 0 {
		return fmt.Errorf("%w: scores cannot be negative (%d-%d)", ErrInvalidScore, a, b)
	}
	if a == b {
		return fmt.Errorf("%w: %d-%d", ErrTiedGame, a, b)
	}

	winner, loser := a, b
	if b > a {
		winner, loser = b, a
	}
	if winner < winningPoints {
		return fmt.Errorf("%w: winner must reach at least %d points (%d-%d)", ErrInvalidScore, winningPoints, a, b)
	}
	if loser >= winningPoints-2 && winner-loser < 2 {
		return fmt.Errorf("%w: must win by 2 once opponent has %d points (%d-%d)", ErrInvalidScore, winningPoints-2, a, b)
	}
	return nil
}

// Resolve validates a sequence of games and determines the match outcome.
// The match ends the moment either side reaches 3 game wins; submitting
// games past that point is rejected.
func Resolve(games []Game) (Outcome, error) {
	var out Outcome

	if len(games) == 0 {
		return out, ErrIncompleteMatch
	}
	if len(games) > MaxGames {
		return out, fmt.Errorf("%w: got %d games", ErrExcessGames, len(games))
	}

	for i, g := range games {
		if out.ChallengerGames == GamesToWin || out.ChallengedGames == GamesToWin {
			return Outcome{}, fmt.Errorf("%w: game %d submitted after the match was won", ErrExcessGames, i+1)
		}
		if err := ValidateGame(g.ChallengerPoints, g.ChallengedPoints); err != nil {
			return Outcome{}, fmt.Errorf("game %d: %w", i+1, err)
		}
		if g.ChallengerPoints > suspiciousPoints || g.ChallengedPoints > suspiciousPoints {
			out.Suspicious = true
		}
		if g.ChallengerPoints > g.ChallengedPoints {
			out.ChallengerGames++
		} else {
			out.ChallengedGames++
		}
	}

	if out.ChallengerGames < GamesToWin && out.ChallengedGames < GamesToWin {
		return Outcome{}, fmt.Errorf("%w: %d-%d in games", ErrIncompleteMatch, out.ChallengerGames, out.ChallengedGames)
	}

	out.ChallengerWon = out.ChallengerGames == GamesToWin
	return out, nil
}

// WalkoverOutcome is the nominal 3-0 result awarded to the challenger when
// the match is decided without play.
func WalkoverOutcome() Outcome {
	return Outcome{ChallengerGames: GamesToWin, ChallengerWon: true}
}
