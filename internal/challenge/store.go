package challenge

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new challenge Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) Create(ch *Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var duplicate bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM challenges
			WHERE status = ? AND challenger_id = ? AND challenged_id = ?
		)`, StatusPending, ch.ChallengerID, ch.ChallengedID,
	).Scan(&duplicate)
	if err != nil {
		return err
	}
	if duplicate {
		return ErrDuplicatePending
	}

	var busy bool
	err = tx.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM challenges
			WHERE status IN (?, ?)
			AND (challenger_id IN (?, ?) OR challenged_id IN (?, ?))
		)`, StatusPending, StatusAccepted,
		ch.ChallengerID, ch.ChallengedID, ch.ChallengerID, ch.ChallengedID,
	).Scan(&busy)
	if err != nil {
		return err
	}
	if busy {
		return ErrPlayerBusy
	}

	_, err = tx.Exec(`
		INSERT INTO challenges (id, challenger_id, challenged_id, status, created_date, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ch.ID, ch.ChallengerID, ch.ChallengedID, ch.Status, ch.CreatedDate, ch.ExpiryDate,
	)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Info("Challenge created", "challengeID", ch.ID, "challengerID", ch.ChallengerID, "challengedID", ch.ChallengedID)
	return nil
}

const selectChallenge = `
	SELECT id, challenger_id, challenged_id, status, created_date, expiry_date,
	       notified_created, notified_week_reminder, notified_final_week, notified_final_deadline
	FROM challenges`

func (s *store) Get(id string) (*Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, err := scanChallenge(s.db.QueryRow(selectChallenge+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return ch, err
}

func (s *store) ActiveForPlayer(playerID string) (*Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ch, err := scanChallenge(s.db.QueryRow(
		selectChallenge+" WHERE status IN (?, ?) AND (challenger_id = ? OR challenged_id = ?)",
		StatusPending, StatusAccepted, playerID, playerID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return ch, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row rowScanner) (*Challenge, error) {
	var ch Challenge
	var created, week, finalWeek, deadline sql.NullInt64
	err := row.Scan(
		&ch.ID, &ch.ChallengerID, &ch.ChallengedID, &ch.Status, &ch.CreatedDate, &ch.ExpiryDate,
		&created, &week, &finalWeek, &deadline,
	)
	if err != nil {
		return nil, err
	}
	ch.NotifiedCreated = nullableInt64(created)
	ch.NotifiedWeekReminder = nullableInt64(week)
	ch.NotifiedFinalWeek = nullableInt64(finalWeek)
	ch.NotifiedFinalDeadline = nullableInt64(deadline)
	return &ch, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func (s *store) ListActive() ([]Challenge, error) {
	return s.list(selectChallenge+" WHERE status IN (?, ?) ORDER BY created_date", StatusPending, StatusAccepted)
}

func (s *store) ListAll() ([]Challenge, error) {
	return s.list(selectChallenge + " ORDER BY created_date DESC")
}

func (s *store) list(query string, args ...any) ([]Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query challenges", "error", err)
		return nil, err
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		ch, err := scanChallenge(rows)
		if err != nil {
			log.Error("Failed to scan challenge row", "error", err)
			continue
		}
		challenges = append(challenges, *ch)
	}
	return challenges, rows.Err()
}

func (s *store) SetStatus(id string, from, to Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE challenges SET status = ? WHERE id = ? AND status = ?", to, id, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM challenges WHERE id = ?)", id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return fmt.Errorf("%w: expected %s", ErrInvalidState, from)
	}

	log.Info("Challenge status changed", "challengeID", id, "from", from, "to", to)
	return nil
}

func (s *store) MarkNotified(id string, kind NotificationKind, sentAt int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	column, ok := markerColumns[kind]
	if !ok {
		return fmt.Errorf("unknown notification kind %q", kind)
	}

	// The IS NULL guard keeps each marker write-once.
	res, err := s.db.Exec("UPDATE challenges SET "+column+" = ? WHERE id = ? AND "+column+" IS NULL", sentAt, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		log.Debug("Notification marker already set", "challengeID", id, "kind", kind)
	}
	return nil
}

var markerColumns = map[NotificationKind]string{
	NotifCreated:       "notified_created",
	NotifWeekReminder:  "notified_week_reminder",
	NotifFinalWeek:     "notified_final_week",
	NotifFinalDeadline: "notified_final_deadline",
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.Exec("DELETE FROM challenges"); err != nil {
		log.Error("Failed to clear challenges table", "error", err)
	}
}
