package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(respondCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(metricsCmd)

	recordCmd.Flags().BoolVar(&walkover, "walkover", false, "Record the match as a walkover win for the challenger")
}

var walkover bool

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the active players on the ladder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the current ladder standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <name>",
	Short: "Join a new player at the bottom of the ladder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/players/join", map[string]any{"name": args[0]})
	},
}

var challengeCmd = &cobra.Command{
	Use:   "challenge <challenger-id> <challenged-id>",
	Short: "Create a challenge against a better-ranked player",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/challenges/create", map[string]any{
			"challenger_id": args[0],
			"challenged_id": args[1],
		})
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond <challenge-id> <accept|decline>",
	Short: "Respond to a pending challenge",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/challenges/respond", map[string]any{
			"challenge_id": args[0],
			"decision":     args[1],
		})
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <challenge-id> [scores...]",
	Short: "Record a match result, scores as challenger-challenged pairs (e.g. 11-8 9-11 11-5 11-9)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		games := make([]map[string]int, 0, len(args)-1)
		for _, score := range args[1:] {
			var challengerPoints, challengedPoints int
			if _, err := fmt.Sscanf(score, "%d-%d", &challengerPoints, &challengedPoints); err != nil {
				return fmt.Errorf("invalid score %q, expected e.g. 11-8", score)
			}
			games = append(games, map[string]int{
				"challenger_points": challengerPoints,
				"challenged_points": challengedPoints,
			})
		}
		return performPostRequest("/matches/record", map[string]any{
			"challenge_id": args[0],
			"games":        games,
			"is_walkover":  walkover,
		})
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Trigger an expiry and reminder sweep",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/sweep", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string, payload any) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
