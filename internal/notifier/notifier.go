package notifier

import (
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
)

// Notifier defines a high-level interface for sending notifications about
// ladder events. This decouples the engine from the specific delivery
// provider (e.g. Slack).
type Notifier interface {
	// SendChallengeCreated tells the challenged player a new challenge is waiting.
	SendChallengeCreated(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error
	// SendWeekReminder nudges the challenged player after a week without a response.
	SendWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error
	// SendFinalWeekReminder tells both players an accepted match enters its final week.
	SendFinalWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error
	// SendFinalDeadline warns both players the deadline has passed and the
	// 24-hour grace window is running.
	SendFinalDeadline(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error
	// SendChallengeExpired announces that a challenge ran out of time.
	SendChallengeExpired(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error
	// SendMatchResult announces a recorded result and the position changes.
	SendMatchResult(m *ladder.Match, winner, loser *ladder.Player, dryRun bool) error
	// SendStandings posts the current ladder, top position first.
	SendStandings(players []ladder.Player, dryRun bool) error
}
