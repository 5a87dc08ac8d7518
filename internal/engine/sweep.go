package engine

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/pubsub"
)

// sweepAction is one thing the sweep decided to do for a challenge.
type sweepAction int

const (
	actionNone sweepAction = iota
	actionExpirePending
	actionExpireUnplayed
	actionWeekReminder
	actionFinalWeek
	actionFinalDeadline
)

// plan decides what, if anything, the sweep should do for a single
// challenge at the given instant. Terminal transitions win over reminders,
// so a challenge past its deadline never gets a late nudge.
func plan(ch *challenge.Challenge, now time.Time) sweepAction {
	age := now.Sub(ch.Created())

	switch ch.Status {
	case challenge.StatusPending:
		if now.After(ch.Expiry()) {
			return actionExpirePending
		}
		if age >= challenge.WeekReminderAge && !ch.Notified(challenge.NotifWeekReminder) {
			return actionWeekReminder
		}
	case challenge.StatusAccepted:
		if now.After(ch.Expiry().Add(challenge.Grace)) {
			return actionExpireUnplayed
		}
		if now.After(ch.Expiry()) && !ch.Notified(challenge.NotifFinalDeadline) {
			return actionFinalDeadline
		}
		if age >= challenge.FinalWeekAge && !ch.Notified(challenge.NotifFinalWeek) {
			return actionFinalWeek
		}
	}
	return actionNone
}

// Sweep walks every non-terminal challenge and applies the expiry and
// reminder rules. It is safe to run concurrently and repeatedly: status
// transitions are compare-and-swap and reminder markers are write-once,
// so a rerun is a no-op for work already done.
func (e *Engine) Sweep(dryRun bool) (SweepSummary, error) {
	start := e.now()
	var summary SweepSummary

	active, err := e.challenges.ListActive()
	if err != nil {
		return summary, err
	}

	for i := range active {
		ch := &active[i]
		summary.Checked++

		switch plan(ch, start) {
		case actionExpirePending:
			if e.expire(ch, challenge.StatusExpired, dryRun) {
				summary.Expired++
			}
		case actionExpireUnplayed:
			if e.expire(ch, challenge.StatusExpiredUnplayed, dryRun) {
				summary.ExpiredUnplayed++
			}
		case actionWeekReminder:
			if e.remind(ch, challenge.NotifWeekReminder, start, dryRun) {
				summary.RemindersSent++
			}
		case actionFinalWeek:
			if e.remind(ch, challenge.NotifFinalWeek, start, dryRun) {
				summary.RemindersSent++
			}
		case actionFinalDeadline:
			if e.remind(ch, challenge.NotifFinalDeadline, start, dryRun) {
				summary.RemindersSent++
			}
		}
	}

	e.metrics.IncSweepRuns()
	e.metrics.ObserveSweepDuration(e.now().Sub(start).Seconds())
	log.Info("Expiry sweep finished",
		"checked", summary.Checked,
		"expired", summary.Expired,
		"expiredUnplayed", summary.ExpiredUnplayed,
		"reminders", summary.RemindersSent,
		"dryRun", dryRun)
	return summary, nil
}

// expire moves a challenge to a terminal status and announces it. The
// transition is recorded first; the announcement is best-effort.
func (e *Engine) expire(ch *challenge.Challenge, to challenge.Status, dryRun bool) bool {
	if dryRun {
		log.Info("[Dry Run] Would expire challenge", "challengeID", ch.ID, "to", to)
		return true
	}

	if err := e.challenges.SetStatus(ch.ID, ch.Status, to); err != nil {
		// Another sweep or a response got there first.
		log.Debug("Skipping expiry, challenge already transitioned", "challengeID", ch.ID, "error", err)
		return false
	}
	ch.Status = to

	challenger, cerr := e.players.GetPlayer(ch.ChallengerID)
	challenged, derr := e.players.GetPlayer(ch.ChallengedID)
	if cerr == nil && derr == nil {
		e.emit("challenge_expired", ch, []string{challenger.Name, challenged.Name}, func() error {
			return e.notifier.SendChallengeExpired(ch, challenger, challenged, dryRun)
		}, "")
	}

	e.publishChallengeEvent(pubsub.EventChallengeExpired, ch)
	return true
}

// remind sends the reminder matching the marker kind. The marker is only
// set after a successful send, so a failed delivery retries next sweep.
func (e *Engine) remind(ch *challenge.Challenge, kind challenge.NotificationKind, now time.Time, dryRun bool) bool {
	if dryRun {
		log.Info("[Dry Run] Would send reminder", "challengeID", ch.ID, "kind", kind)
		return true
	}

	challenger, err := e.players.GetPlayer(ch.ChallengerID)
	if err != nil {
		log.Error("Failed to load challenger for reminder", "error", err, "challengeID", ch.ID)
		return false
	}
	challenged, err := e.players.GetPlayer(ch.ChallengedID)
	if err != nil {
		log.Error("Failed to load challenged player for reminder", "error", err, "challengeID", ch.ID)
		return false
	}

	daysLeft := int(ch.Expiry().Sub(now).Hours() / 24)
	if daysLeft < 0 {
		daysLeft = 0
	}

	var send func() error
	switch kind {
	case challenge.NotifWeekReminder:
		send = func() error {
			return e.notifier.SendWeekReminder(ch, challenger, challenged, daysLeft, dryRun)
		}
	case challenge.NotifFinalWeek:
		send = func() error {
			return e.notifier.SendFinalWeekReminder(ch, challenger, challenged, daysLeft, dryRun)
		}
	case challenge.NotifFinalDeadline:
		send = func() error {
			return e.notifier.SendFinalDeadline(ch, challenger, challenged, dryRun)
		}
	default:
		return false
	}

	return e.emit(string(kind), ch, []string{challenger.Name, challenged.Name}, send, kind)
}

// RunSweeper runs the expiry sweep on a fixed interval until the context
// is cancelled.
func (e *Engine) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Starting expiry sweeper", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping expiry sweeper")
			return
		case <-ticker.C:
			if _, err := e.Sweep(false); err != nil {
				log.Error("Expiry sweep failed", "error", err)
			}
		}
	}
}
