package ladder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new ladder Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) JoinPlayer(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("player name must not be empty")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM players WHERE is_active = 1 AND LOWER(name) = LOWER(?))",
		name,
	).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM players WHERE is_active = 1").Scan(&count); err != nil {
		return nil, err
	}

	p := &Player{
		ID:       uuid.NewString(),
		Name:     name,
		Position: count + 1,
		JoinDate: time.Now().Unix(),
		IsActive: true,
	}

	_, err = tx.Exec(
		"INSERT INTO players (id, name, position, join_date, is_active) VALUES (?, ?, ?, ?, 1)",
		p.ID, p.Name, p.Position, p.JoinDate,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("Player joined the ladder", "playerID", p.ID, "name", p.Name, "position", p.Position)
	return p, nil
}

func (s *store) GetPlayer(id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getPlayerLocked(s.db, id)
}

type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *store) getPlayerLocked(q queryer, id string) (*Player, error) {
	row := q.QueryRow(selectPlayer+" WHERE id = ? AND is_active = 1", id)
	return scanPlayer(row)
}

func (s *store) GetPlayerByName(name string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		selectPlayer+" WHERE is_active = 1 AND LOWER(name) = LOWER(?)",
		strings.TrimSpace(name),
	)
	return scanPlayer(row)
}

const selectPlayer = `
	SELECT id, name, position, participation_points, wins, losses, join_date, is_active
	FROM players`

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	err := row.Scan(&p.ID, &p.Name, &p.Position, &p.ParticipationPoints, &p.Wins, &p.Losses, &p.JoinDate, &p.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *store) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectPlayer + " WHERE is_active = 1 ORDER BY position")
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Position, &p.ParticipationPoints, &p.Wins, &p.Losses, &p.JoinDate, &p.IsActive); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) ListMatches() ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, challenge_id, winner_id, loser_id, games_json, is_walkover, suspicious, played_at, winner_prev_position, loser_prev_position
		FROM matches ORDER BY played_at DESC
	`)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var gamesJSON sql.NullString
		if err := rows.Scan(&m.ID, &m.ChallengeID, &m.WinnerID, &m.LoserID, &gamesJSON, &m.IsWalkover, &m.Suspicious, &m.PlayedAt, &m.WinnerPrevPosition, &m.LoserPrevPosition); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		if gamesJSON.Valid && gamesJSON.String != "" {
			if err := json.Unmarshal([]byte(gamesJSON.String), &m.Games); err != nil {
				log.Error("Failed to unmarshal games_json", "error", err, "matchID", m.ID)
			}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RecordMatch applies the position-shift rule: the winner takes the better of
// the two old positions, the loser slots in directly below, and everyone who
// sat between the two old positions moves back one slot. A win by the
// already-better-ranked player changes no positions.
func (s *store) RecordMatch(m *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	winner, err := s.getPlayerLocked(tx, m.WinnerID)
	if err != nil {
		return fmt.Errorf("winner: %w", err)
	}
	loser, err := s.getPlayerLocked(tx, m.LoserID)
	if err != nil {
		return fmt.Errorf("loser: %w", err)
	}

	m.WinnerPrevPosition = winner.Position
	m.LoserPrevPosition = loser.Position

	if winner.Position > loser.Position {
		// Everyone strictly between the loser's and winner's old slots
		// moves back one.
		_, err = tx.Exec(
			"UPDATE players SET position = position + 1 WHERE is_active = 1 AND position > ? AND position < ?",
			loser.Position, winner.Position,
		)
		if err != nil {
			return err
		}
		if _, err = tx.Exec("UPDATE players SET position = ? WHERE id = ?", loser.Position, winner.ID); err != nil {
			return err
		}
		if _, err = tx.Exec("UPDATE players SET position = ? WHERE id = ?", loser.Position+1, loser.ID); err != nil {
			return err
		}
	}

	for _, id := range []string{m.WinnerID, m.LoserID} {
		column := "losses"
		if id == m.WinnerID {
			column = "wins"
		}
		_, err = tx.Exec(
			"UPDATE players SET "+column+" = "+column+" + 1, participation_points = MIN(participation_points + 1, ?) WHERE id = ?",
			MaxParticipationPoints, id,
		)
		if err != nil {
			return err
		}
	}

	var gamesJSON []byte
	if len(m.Games) > 0 {
		gamesJSON, err = json.Marshal(m.Games)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO matches (id, challenge_id, winner_id, loser_id, games_json, is_walkover, suspicious, played_at, winner_prev_position, loser_prev_position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ChallengeID, m.WinnerID, m.LoserID, string(gamesJSON), m.IsWalkover, m.Suspicious, m.PlayedAt, m.WinnerPrevPosition, m.LoserPrevPosition,
	)
	if err != nil {
		return err
	}

	// The challenge is consumed by the recording; the match row is its archive.
	if _, err = tx.Exec("DELETE FROM challenges WHERE id = ?", m.ChallengeID); err != nil {
		return err
	}

	if err := verifyPositions(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("Match recorded", "matchID", m.ID, "winnerID", m.WinnerID, "loserID", m.LoserID,
		"winner_prev_position", m.WinnerPrevPosition, "loser_prev_position", m.LoserPrevPosition)
	return nil
}

func (s *store) DeactivatePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	p, err := s.getPlayerLocked(tx, id)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("UPDATE players SET is_active = 0, position = 0 WHERE id = ?", id); err != nil {
		return err
	}
	if _, err = tx.Exec("UPDATE players SET position = position - 1 WHERE is_active = 1 AND position > ?", p.Position); err != nil {
		return err
	}

	// The player can no longer play, so any open challenge of theirs ends
	// here. This frees the counterpart to challenge again immediately
	// instead of waiting out the expiry sweep.
	_, err = tx.Exec(
		"UPDATE challenges SET status = 'declined' WHERE status IN ('pending', 'accepted') AND (challenger_id = ? OR challenged_id = ?)",
		id, id,
	)
	if err != nil {
		return err
	}

	if err := verifyPositions(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("Player deactivated", "playerID", id, "vacated_position", p.Position)
	return nil
}

func (s *store) VerifyPositions() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return verifyPositions(s.db)
}

func verifyPositions(q queryer) error {
	var total, distinct int
	var minPos, maxPos sql.NullInt64
	err := q.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT position), MIN(position), MAX(position)
		FROM players WHERE is_active = 1
	`).Scan(&total, &distinct, &minPos, &maxPos)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}
	if distinct != total || minPos.Int64 != 1 || maxPos.Int64 != int64(total) {
		return fmt.Errorf("%w: n=%d distinct=%d min=%d max=%d", ErrPositionsCorrupt, total, distinct, minPos.Int64, maxPos.Int64)
	}
	return nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "challenges", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
