package engine

import (
	"time"

	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/metrics"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/notifier"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/pubsub"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// Engine drives the ladder's business rules: challenge creation and
// responses, match recording with ranking updates, and the periodic
// expiry/reminder sweep.
type Engine struct {
	players    ladder.Store
	challenges challenge.Store
	notifier   notifier.Notifier
	outbox     *notifier.Outbox
	metrics    metrics.Metrics
	pubsub     pubsub.PubSubClient
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Result is the submitted outcome of an accepted challenge: either a
// walkover or a sequence of per-game scores.
type Result struct {
	IsWalkover bool           `json:"is_walkover"`
	Games      []scoring.Game `json:"games,omitempty"`
}

// Decision is a challenged player's answer to a pending challenge.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionDeclined Decision = "declined"
)

// SweepSummary reports what one expiry sweep did.
type SweepSummary struct {
	Checked         int `json:"checked"`
	Expired         int `json:"expired"`
	ExpiredUnplayed int `json:"expired_unplayed"`
	RemindersSent   int `json:"reminders_sent"`
}
