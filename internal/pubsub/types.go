package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventChallengeCreated EventType = "challenge-created"
	EventChallengeExpired EventType = "challenge-expired"
	EventMatchRecorded    EventType = "match-recorded"
)

// TopicLadderEvents is the topic all ladder events are published to.
// Subscribers (e.g. the email collaborator) fan out from there.
const TopicLadderEvents = "ladder-events"

// ChallengeEvent is the payload published for challenge lifecycle events.
type ChallengeEvent struct {
	Type         EventType `msgpack:"type"`
	ChallengeID  string    `msgpack:"challenge_id"`
	ChallengerID string    `msgpack:"challenger_id"`
	ChallengedID string    `msgpack:"challenged_id"`
	Status       string    `msgpack:"status"`
	At           int64     `msgpack:"at"`
}

// MatchEvent is the payload published when a match result is recorded.
type MatchEvent struct {
	Type     EventType `msgpack:"type"`
	MatchID  string    `msgpack:"match_id"`
	WinnerID string    `msgpack:"winner_id"`
	LoserID  string    `msgpack:"loser_id"`
	At       int64     `msgpack:"at"`
}
