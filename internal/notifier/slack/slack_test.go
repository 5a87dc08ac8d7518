package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testChallenge() *challenge.Challenge {
	created := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	return &challenge.Challenge{
		ID:           "ch-1",
		ChallengerID: "p2",
		ChallengedID: "p1",
		Status:       challenge.StatusPending,
		CreatedDate:  created.Unix(),
		ExpiryDate:   created.Add(challenge.Window).Unix(),
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123")

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123")

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	notifier := NewNotifierWithAPI(api, "C123")

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendChallengeCreated_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	notifier := NewNotifierWithAPI(api, "C123")

	ch := testChallenge()
	challenger := &ladder.Player{ID: "p2", Name: "Alice", Position: 5}
	challenged := &ladder.Player{ID: "p1", Name: "Bob", Position: 2}

	err := notifier.SendChallengeCreated(ch, challenger, challenged, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendChallengeCreated")
}

func TestFormatChallengeCreated(t *testing.T) {
	ch := testChallenge()
	challenger := &ladder.Player{ID: "p2", Name: "Alice", Position: 5}
	challenged := &ladder.Player{ID: "p1", Name: "Bob", Position: 2}

	client := &Notifier{channelID: "C123"}
	msg := client.formatChallengeCreated(ch, challenger, challenged)
	require.Len(t, msg.Blocks.BlockSet, 3, "Expected 3 blocks")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "🎾 New challenge! 🎾", header.Text.Text)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok, "Second block should be a SectionBlock")
	assert.Equal(t, "Alice (#5) has challenged Bob (#2)", details.Text.Text)

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok, "Third block should be a ContextBlock")
	require.Len(t, contextBlock.ContextElements.Elements, 1)

	deadlineElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, deadlineElement.Text, "Play by:")
}

func TestFormatWeekReminder(t *testing.T) {
	ch := testChallenge()
	challenger := &ladder.Player{Name: "Alice", Position: 5}
	challenged := &ladder.Player{Name: "Bob", Position: 2}

	client := &Notifier{channelID: "C123"}
	msg := client.formatWeekReminder(ch, challenger, challenged, 14)
	require.Len(t, msg.Blocks.BlockSet, 3)

	details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, details.Text.Text, "Bob, you still have a pending challenge from Alice.")

	contextBlock, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
	require.True(t, ok)
	deadlineElement, ok := contextBlock.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, deadlineElement.Text, "14 days left")
}

func TestFormatChallengeExpired(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	challenger := &ladder.Player{Name: "Alice"}
	challenged := &ladder.Player{Name: "Bob"}

	t.Run("unanswered challenge", func(t *testing.T) {
		ch := testChallenge()
		ch.Status = challenge.StatusExpired

		msg := client.formatChallengeExpired(ch, challenger, challenged)
		require.Len(t, msg.Blocks.BlockSet, 2)

		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "The challenge from Alice to Bob got no response in time. Positions are unchanged.", details.Text.Text)
	})

	t.Run("unplayed accepted challenge", func(t *testing.T) {
		ch := testChallenge()
		ch.Status = challenge.StatusExpiredUnplayed

		msg := client.formatChallengeExpired(ch, challenger, challenged)
		require.Len(t, msg.Blocks.BlockSet, 2)

		details, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "The accepted match between Alice and Bob was never played. Positions are unchanged.", details.Text.Text)
	})
}

func TestFormatMatchResult(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("challenger win with position change", func(t *testing.T) {
		m := &ladder.Match{
			WinnerID: "p2",
			LoserID:  "p1",
			Games: []scoring.Game{
				{ChallengerPoints: 11, ChallengedPoints: 8},
				{ChallengerPoints: 9, ChallengedPoints: 11},
				{ChallengerPoints: 11, ChallengedPoints: 5},
				{ChallengerPoints: 11, ChallengedPoints: 9},
			},
			WinnerPrevPosition: 5,
			LoserPrevPosition:  2,
		}
		winner := &ladder.Player{Name: "Alice", Position: 2}
		loser := &ladder.Player{Name: "Bob", Position: 3}

		msg := client.formatMatchResult(m, winner, loser)
		require.Len(t, msg.Blocks.BlockSet, 3)

		result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Alice beat Bob 3-1 (11-8, 9-11, 11-5, 11-9).", result.Text.Text)

		move, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Alice climbs from #5 to #2. Bob drops to #3.", move.Text.Text)
	})

	t.Run("walkover", func(t *testing.T) {
		m := &ladder.Match{
			WinnerID:           "p2",
			LoserID:            "p1",
			IsWalkover:         true,
			WinnerPrevPosition: 5,
			LoserPrevPosition:  2,
		}
		winner := &ladder.Player{Name: "Alice", Position: 2}
		loser := &ladder.Player{Name: "Bob", Position: 3}

		msg := client.formatMatchResult(m, winner, loser)
		result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Alice beat Bob by walkover.", result.Text.Text)
	})

	t.Run("defender win keeps positions", func(t *testing.T) {
		m := &ladder.Match{
			WinnerID: "p1",
			LoserID:  "p2",
			Games: []scoring.Game{
				{ChallengerPoints: 5, ChallengedPoints: 11},
				{ChallengerPoints: 7, ChallengedPoints: 11},
				{ChallengerPoints: 9, ChallengedPoints: 11},
			},
			WinnerPrevPosition: 2,
			LoserPrevPosition:  5,
		}
		winner := &ladder.Player{Name: "Bob", Position: 2}
		loser := &ladder.Player{Name: "Alice", Position: 5}

		msg := client.formatMatchResult(m, winner, loser)
		require.Len(t, msg.Blocks.BlockSet, 3)

		result, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Bob beat Alice 3-0 (11-5, 11-7, 11-9).", result.Text.Text)

		move, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Bob defends the higher position.", move.Text.Text)
	})
}

func TestFormatStandings(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("displays standings with players", func(t *testing.T) {
		players := []ladder.Player{
			{Name: "Alice", Position: 1, Wins: 8, Losses: 2, ParticipationPoints: 3},
			{Name: "Bob", Position: 2, Wins: 6, Losses: 4, ParticipationPoints: 2},
			{Name: "Carol", Position: 3, Wins: 4, Losses: 6, ParticipationPoints: 3},
		}

		msg := client.formatStandings(players)
		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (header + 3 players)")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🪜 Ladder standings 🪜", header.Text.Text)

		player1, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player1.Text.Text, "1. 🥇 Alice")
		assert.Contains(t, player1.Text.Text, "> Win %: 80% (8W/2L)")

		player2, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player2.Text.Text, "2. 🥈 Bob")

		player3, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player3.Text.Text, "3. 🥉 Carol")
	})

	t.Run("displays message when ladder is empty", func(t *testing.T) {
		msg := client.formatStandings(nil)
		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")

		message, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No players yet. Join the ladder!", message.Text.Text)
	})
}
