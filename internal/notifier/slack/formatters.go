package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

const deadlineFormat = "Monday 02 Jan"

// formatChallengeCreated creates the Slack message announcing a new challenge using Block Kit.
func (s *Notifier) formatChallengeCreated(ch *challenge.Challenge, challenger, challenged *ladder.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🎾 New challenge! 🎾", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s (#%d) has challenged %s (#%d)",
		challenger.Name, challenger.Position, challenged.Name, challenged.Position)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	deadlineText := fmt.Sprintf("Play by: %s", ch.Expiry().Format(deadlineFormat))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", deadlineText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatWeekReminder nudges the challenged player a week in.
func (s *Notifier) formatWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⏰ Challenge reminder ⏰", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s, you still have a pending challenge from %s.\nAccept or decline before it expires.",
		challenged.Name, challenger.Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	deadlineText := fmt.Sprintf("%d days left (deadline %s)", daysLeft, ch.Expiry().Format(deadlineFormat))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", deadlineText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatFinalWeekReminder tells both players their accepted match enters its final week.
func (s *Notifier) formatFinalWeekReminder(ch *challenge.Challenge, challenger, challenged *ladder.Player, daysLeft int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⏰ Final week! ⏰", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s is entering its final week. Get the match played and the result recorded!",
		challenger.Name, challenged.Name)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	deadlineText := fmt.Sprintf("%d days left (deadline %s)", daysLeft, ch.Expiry().Format(deadlineFormat))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", deadlineText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatFinalDeadline warns both players the deadline has passed and the grace window is running.
func (s *Notifier) formatFinalDeadline(ch *challenge.Challenge, challenger, challenged *ladder.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🚨 Deadline passed 🚨", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("%s vs %s was due by %s. Record the result within 24 hours or the challenge is marked unplayed.",
		challenger.Name, challenged.Name, ch.Expiry().Format(deadlineFormat))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatChallengeExpired announces that a challenge ran out of time.
func (s *Notifier) formatChallengeExpired(ch *challenge.Challenge, challenger, challenged *ladder.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⌛ Challenge expired ⌛", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var detailsText string
	if ch.Status == challenge.StatusExpiredUnplayed {
		detailsText = fmt.Sprintf("The accepted match between %s and %s was never played. Positions are unchanged.",
			challenger.Name, challenged.Name)
	} else {
		detailsText = fmt.Sprintf("The challenge from %s to %s got no response in time. Positions are unchanged.",
			challenger.Name, challenged.Name)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}

// formatMatchResult announces a recorded result and the position change using Block Kit.
func (s *Notifier) formatMatchResult(m *ladder.Match, winner, loser *ladder.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Match result! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	var resultText string
	if m.IsWalkover {
		resultText = fmt.Sprintf("%s beat %s by walkover.", winner.Name, loser.Name)
	} else {
		resultText = fmt.Sprintf("%s beat %s %s.", winner.Name, loser.Name, formatGameScores(m))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultText, true, false), nil, nil))

	if winner.Position < m.WinnerPrevPosition {
		moveText := fmt.Sprintf("%s climbs from #%d to #%d. %s drops to #%d.",
			winner.Name, m.WinnerPrevPosition, winner.Position, loser.Name, loser.Position)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", moveText, true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", fmt.Sprintf("%s defends the higher position.", winner.Name), true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatStandings creates a Slack message to display the current ladder, top position first.
func (s *Notifier) formatStandings(players []ladder.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🪜 Ladder standings 🪜", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(players) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No players yet. Join the ladder!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, player := range players {
		var medal string
		switch player.Position {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Win %%: %d%% (%dW/%dL) | Participation: %d",
			player.Position,
			medal,
			player.Name,
			player.WinPercentage(),
			player.Wins,
			player.Losses,
			player.ParticipationPoints,
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatGameScores renders per-game scores from the winner's perspective,
// e.g. "3-1 (11-8, 9-11, 11-5, 11-9)".
func formatGameScores(m *ladder.Match) string {
	var winnerGames, loserGames int
	scores := make([]string, 0, len(m.Games))
	winnerWasChallenger := challengerWon(m)
	for _, g := range m.Games {
		a, b := g.ChallengerPoints, g.ChallengedPoints
		if !winnerWasChallenger {
			a, b = b, a
		}
		if a > b {
			winnerGames++
		} else {
			loserGames++
		}
		scores = append(scores, fmt.Sprintf("%d-%d", a, b))
	}
	return fmt.Sprintf("%d-%d (%s)", winnerGames, loserGames, strings.Join(scores, ", "))
}

func challengerWon(m *ladder.Match) bool {
	var challengerGames, challengedGames int
	for _, g := range m.Games {
		if g.ChallengerPoints > g.ChallengedPoints {
			challengerGames++
		} else {
			challengedGames++
		}
	}
	return challengerGames >= scoring.GamesToWin || challengerGames > challengedGames
}
