package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/notifier"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier delivers ladder notifications to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface

func (s *Notifier) SendChallengeCreated(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	msg := s.formatChallengeCreated(ch, challenger, challenged)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error {
	msg := s.formatWeekReminder(ch, challenger, challenged, daysLeft)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendFinalWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int, dryRun bool) error {
	msg := s.formatFinalWeekReminder(ch, challenger, challenged, daysLeft)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendFinalDeadline(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	msg := s.formatFinalDeadline(ch, challenger, challenged)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendChallengeExpired(ch *challenge.Challenge, challenger, challenged *ladder.Player, dryRun bool) error {
	msg := s.formatChallengeExpired(ch, challenger, challenged)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMatchResult(m *ladder.Match, winner, loser *ladder.Player, dryRun bool) error {
	msg := s.formatMatchResult(m, winner, loser)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendStandings(players []ladder.Player, dryRun bool) error {
	msg := s.formatStandings(players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
