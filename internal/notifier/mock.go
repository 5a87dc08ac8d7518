package notifier

import (
	"sync"

	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// FailAll makes every send return this error, for exercising the
	// best-effort delivery paths.
	FailAll error

	// Call records
	ChallengeCreatedCalls  []*challenge.Challenge
	WeekReminderCalls      []*challenge.Challenge
	FinalWeekReminderCalls []*challenge.Challenge
	FinalDeadlineCalls     []*challenge.Challenge
	ChallengeExpiredCalls  []*challenge.Challenge
	MatchResultCalls       []*ladder.Match
	StandingsCalls         [][]ladder.Player
}

var _ Notifier = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChallengeCreatedCalls = nil
	m.WeekReminderCalls = nil
	m.FinalWeekReminderCalls = nil
	m.FinalDeadlineCalls = nil
	m.ChallengeExpiredCalls = nil
	m.MatchResultCalls = nil
	m.StandingsCalls = nil
}

func (m *Mock) SendChallengeCreated(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChallengeCreatedCalls = append(m.ChallengeCreatedCalls, ch)
	return m.FailAll
}

func (m *Mock) SendWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WeekReminderCalls = append(m.WeekReminderCalls, ch)
	return m.FailAll
}

func (m *Mock) SendFinalWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalWeekReminderCalls = append(m.FinalWeekReminderCalls, ch)
	return m.FailAll
}

func (m *Mock) SendFinalDeadline(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalDeadlineCalls = append(m.FinalDeadlineCalls, ch)
	return m.FailAll
}

func (m *Mock) SendChallengeExpired(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChallengeExpiredCalls = append(m.ChallengeExpiredCalls, ch)
	return m.FailAll
}

func (m *Mock) SendMatchResult(match *ladder.Match, winner, loser *ladder.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResultCalls = append(m.MatchResultCalls, match)
	return m.FailAll
}

func (m *Mock) SendStandings(players []ladder.Player, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StandingsCalls = append(m.StandingsCalls, players)
	return m.FailAll
}
