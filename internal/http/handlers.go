package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/engine"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/ladder"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Challenges.Clear()
		s.Players.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) JoinPlayerHandler() http.HandlerFunc {
	type request struct {
		Name string `json:"name"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}

		player, err := s.Players.JoinPlayer(req.Name)
		if err != nil {
			writeError(w, err)
			log.Error("Failed to join player", "name", req.Name, "error", err)
			return
		}

		log.Info("Player joined the ladder", "name", player.Name, "position", player.Position)
		writeJSON(w, http.StatusCreated, player)
	}
}

// StandingsHandler serves the ladder ordered by position. With post=true it
// also publishes the standings to the Slack channel.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Players.ListPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}

		if r.URL.Query().Get("post") == "true" {
			if err := s.Notifier.SendStandings(players, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to post standings", "error", err)
			}
		}

		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Players.ListMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) ListChallengesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			challenges []challenge.Challenge
			err        error
		)
		if r.URL.Query().Get("all") == "true" {
			challenges, err = s.Challenges.ListAll()
		} else {
			challenges, err = s.Challenges.ListActive()
		}
		if err != nil {
			http.Error(w, "Failed to get challenges", http.StatusInternalServerError)
			log.Error("Failed to get challenges from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, challenges)
	}
}

func (s *Server) CreateChallengeHandler() http.HandlerFunc {
	type request struct {
		ChallengerID string `json:"challenger_id"`
		ChallengedID string `json:"challenged_id"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ChallengerID == "" || req.ChallengedID == "" {
			http.Error(w, "challenger_id and challenged_id are required.", http.StatusBadRequest)
			return
		}

		ch, err := s.Engine.CreateChallenge(req.ChallengerID, req.ChallengedID, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			log.Error("Failed to create challenge", "challengerID", req.ChallengerID, "challengedID", req.ChallengedID, "error", err)
			return
		}

		writeJSON(w, http.StatusCreated, ch)
	}
}

func (s *Server) RespondChallengeHandler() http.HandlerFunc {
	type request struct {
		ChallengeID string `json:"challenge_id"`
		Decision    string `json:"decision"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		var decision engine.Decision
		switch req.Decision {
		case "accept", string(engine.DecisionAccepted):
			decision = engine.DecisionAccepted
		case "decline", string(engine.DecisionDeclined):
			decision = engine.DecisionDeclined
		default:
			http.Error(w, "decision must be 'accept' or 'decline'.", http.StatusBadRequest)
			return
		}

		ch, err := s.Engine.Respond(req.ChallengeID, decision)
		if err != nil {
			writeError(w, err)
			log.Error("Failed to respond to challenge", "challengeID", req.ChallengeID, "error", err)
			return
		}

		writeJSON(w, http.StatusOK, ch)
	}
}

func (s *Server) RecordMatchHandler() http.HandlerFunc {
	type request struct {
		ChallengeID string         `json:"challenge_id"`
		Games       []scoring.Game `json:"games"`
		IsWalkover  bool           `json:"is_walkover"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.ChallengeID == "" {
			http.Error(w, "challenge_id is required.", http.StatusBadRequest)
			return
		}

		m, err := s.Engine.RecordMatch(req.ChallengeID, engine.Result{
			IsWalkover: req.IsWalkover,
			Games:      req.Games,
		}, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			log.Error("Failed to record match", "challengeID", req.ChallengeID, "error", err)
			return
		}

		writeJSON(w, http.StatusCreated, m)
	}
}

func (s *Server) SweepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting expiry sweep...")
		summary, err := s.Engine.Sweep(isDryRunFromContext(r))
		if err != nil {
			http.Error(w, "Sweep failed", http.StatusInternalServerError)
			log.Error("Expiry sweep failed", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ladder.ErrPlayerNotFound), errors.Is(err, challenge.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ladder.ErrDuplicateName),
		errors.Is(err, challenge.ErrPlayerBusy),
		errors.Is(err, challenge.ErrDuplicatePending),
		errors.Is(err, challenge.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, challenge.ErrInvalidDirection),
		errors.Is(err, scoring.ErrInvalidScore),
		errors.Is(err, scoring.ErrTiedGame),
		errors.Is(err, scoring.ErrIncompleteMatch),
		errors.Is(err, scoring.ErrExcessGames):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
