package engine

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/metrics"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/notifier"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/pubsub"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// New creates a new Engine.
func New(players ladder.Store, challenges challenge.Store, notif notifier.Notifier, outbox *notifier.Outbox, metrics metrics.Metrics, ps pubsub.PubSubClient, opts ...Option) *Engine {
	e := &Engine{
		players:    players,
		challenges: challenges,
		notifier:   notif,
		outbox:     outbox,
		metrics:    metrics,
		pubsub:     ps,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateChallenge validates and creates a pending challenge from the
// challenger to the challenged player, then notifies the challenged player.
// The challenged player must currently hold a better (numerically lower)
// position than the challenger.
func (e *Engine) CreateChallenge(challengerID, challengedID string, dryRun bool) (*challenge.Challenge, error) {
	challenger, err := e.players.GetPlayer(challengerID)
	if err != nil {
		return nil, fmt.Errorf("challenger: %w", err)
	}
	challenged, err := e.players.GetPlayer(challengedID)
	if err != nil {
		return nil, fmt.Errorf("challenged: %w", err)
	}

	if challenger.Position <= challenged.Position {
		return nil, fmt.Errorf("%w: position %d cannot challenge position %d",
			challenge.ErrInvalidDirection, challenger.Position, challenged.Position)
	}

	now := e.now()
	ch := &challenge.Challenge{
		ID:           uuid.NewString(),
		ChallengerID: challengerID,
		ChallengedID: challengedID,
		Status:       challenge.StatusPending,
		CreatedDate:  now.Unix(),
		ExpiryDate:   now.Add(challenge.Window).Unix(),
	}

	if dryRun {
		log.Info("[Dry Run] Would create challenge", "challengerID", challengerID, "challengedID", challengedID)
		return ch, nil
	}

	if err := e.challenges.Create(ch); err != nil {
		return nil, err
	}
	e.metrics.IncChallengesCreated()

	// Delivery is best-effort: the challenge exists regardless.
	e.emit(string(challenge.NotifCreated), ch, []string{challenged.Name}, func() error {
		return e.notifier.SendChallengeCreated(ch, challenger, challenged, dryRun)
	}, challenge.NotifCreated)

	e.publishChallengeEvent(pubsub.EventChallengeCreated, ch)
	return ch, nil
}

// Respond applies the challenged player's decision to a pending challenge.
// Caller identity is trusted to be the challenged party; authorization is
// the transport layer's concern.
func (e *Engine) Respond(challengeID string, decision Decision) (*challenge.Challenge, error) {
	var to challenge.Status
	switch decision {
	case DecisionAccepted:
		to = challenge.StatusAccepted
	case DecisionDeclined:
		to = challenge.StatusDeclined
	default:
		return nil, fmt.Errorf("unknown decision %q", decision)
	}

	if err := e.challenges.SetStatus(challengeID, challenge.StatusPending, to); err != nil {
		return nil, err
	}

	log.Info("Challenge response recorded", "challengeID", challengeID, "decision", decision)
	return e.challenges.Get(challengeID)
}

// RecordMatch validates the submitted result of an accepted challenge,
// applies the ranking update and archives the match. The originating
// challenge is consumed in the same transaction.
func (e *Engine) RecordMatch(challengeID string, res Result, dryRun bool) (*ladder.Match, error) {
	ch, err := e.challenges.Get(challengeID)
	if err != nil {
		return nil, err
	}
	if ch.Status != challenge.StatusAccepted {
		return nil, fmt.Errorf("%w: result can only be recorded for an accepted challenge", challenge.ErrInvalidState)
	}

	var outcome scoring.Outcome
	if res.IsWalkover {
		// Walkover: the challenger wins by default.
		outcome = scoring.WalkoverOutcome()
	} else {
		outcome, err = scoring.Resolve(res.Games)
		if err != nil {
			return nil, err
		}
	}

	winnerID, loserID := ch.ChallengerID, ch.ChallengedID
	if !outcome.ChallengerWon {
		winnerID, loserID = ch.ChallengedID, ch.ChallengerID
	}

	m := &ladder.Match{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		WinnerID:    winnerID,
		LoserID:     loserID,
		Games:       res.Games,
		IsWalkover:  res.IsWalkover,
		Suspicious:  outcome.Suspicious,
		PlayedAt:    e.now().Unix(),
	}

	if dryRun {
		log.Info("[Dry Run] Would record match", "challengeID", challengeID, "winnerID", winnerID, "loserID", loserID)
		return m, nil
	}

	if err := e.players.RecordMatch(m); err != nil {
		return nil, err
	}
	e.metrics.IncMatchesRecorded()
	if m.Suspicious {
		log.Warn("Recorded match has unusually high game scores", "matchID", m.ID, "challengeID", challengeID)
	}

	winner, werr := e.players.GetPlayer(winnerID)
	loser, lerr := e.players.GetPlayer(loserID)
	if werr == nil && lerr == nil {
		e.emit("match_result", ch, []string{winner.Name, loser.Name}, func() error {
			return e.notifier.SendMatchResult(m, winner, loser, dryRun)
		}, "")
	}

	e.pubsub.SendMessage(pubsub.TopicLadderEvents, pubsub.MatchEvent{
		Type:     pubsub.EventMatchRecorded,
		MatchID:  m.ID,
		WinnerID: winnerID,
		LoserID:  loserID,
		At:       m.PlayedAt,
	})
	return m, nil
}

// emit records the event in the outbox, attempts delivery and, when a marker
// kind is given, marks the challenge so the notification stays at-most-once.
// Delivery failures are logged and counted, never propagated.
func (e *Engine) emit(kind string, ch *challenge.Challenge, recipients []string, send func() error, marker challenge.NotificationKind) bool {
	outboxID, err := e.outbox.Record(kind, ch.ID, recipients, "")
	if err != nil {
		log.Error("Failed to record notification in outbox", "error", err, "kind", kind, "challengeID", ch.ID)
	}

	if err := send(); err != nil {
		e.metrics.IncNotificationsFailed()
		log.Error("Failed to send notification", "error", err, "kind", kind, "challengeID", ch.ID)
		if outboxID != 0 {
			e.outbox.MarkFailed(outboxID, err)
		}
		return false
	}

	e.metrics.IncNotificationsSent()
	if outboxID != 0 {
		e.outbox.MarkSent(outboxID)
	}
	if marker != "" {
		if err := e.challenges.MarkNotified(ch.ID, marker, e.now().Unix()); err != nil {
			log.Error("Failed to mark notification", "error", err, "kind", kind, "challengeID", ch.ID)
		}
	}
	return true
}

func (e *Engine) publishChallengeEvent(eventType pubsub.EventType, ch *challenge.Challenge) {
	e.pubsub.SendMessage(pubsub.TopicLadderEvents, pubsub.ChallengeEvent{
		Type:         eventType,
		ChallengeID:  ch.ID,
		ChallengerID: ch.ChallengerID,
		ChallengedID: ch.ChallengedID,
		Status:       string(ch.Status),
		At:           e.now().Unix(),
	})
}
