package notifier

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Outbox keeps an auditable record of every emitted notification event,
// independent of whether delivery succeeded. Status transitions happen
// elsewhere first; the outbox is bookkeeping, never a gate.
type Outbox struct {
	db *sql.DB
	mu sync.Mutex
}

// OutboxRecord is one emitted notification event.
type OutboxRecord struct {
	ID          int64    `json:"id"`
	ChallengeID string   `json:"challenge_id,omitempty"`
	Kind        string   `json:"kind"`
	Recipients  []string `json:"recipients"`
	Payload     string   `json:"payload,omitempty"`
	Status      string   `json:"status"`
	Error       string   `json:"error,omitempty"`
	CreatedAt   int64    `json:"created_at"`
}

const (
	outboxQueued = "queued"
	outboxSent   = "sent"
	outboxFailed = "failed"
)

// NewOutbox creates an Outbox backed by the given database.
func NewOutbox(db *sql.DB) *Outbox {
	return &Outbox{db: db}
}

// Record inserts a queued event and returns its id.
func (o *Outbox) Record(kind, challengeID string, recipients []string, payload string) (int64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	res, err := o.db.Exec(`
		INSERT INTO notifications (challenge_id, kind, recipients, payload, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		challengeID, kind, strings.Join(recipients, ","), payload, outboxQueued, time.Now().Unix(),
	)
	if err != nil {
		log.Error("Failed to record notification", "error", err, "kind", kind, "challengeID", challengeID)
		return 0, err
	}
	return res.LastInsertId()
}

// MarkSent flags a queued event as delivered.
func (o *Outbox) MarkSent(id int64) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.db.Exec("UPDATE notifications SET status = ? WHERE id = ?", outboxSent, id)
	return err
}

// MarkFailed flags a queued event as failed with the delivery error.
func (o *Outbox) MarkFailed(id int64, sendErr error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	_, err := o.db.Exec("UPDATE notifications SET status = ?, error = ? WHERE id = ?", outboxFailed, msg, id)
	return err
}

// List returns all recorded events, newest first.
func (o *Outbox) List() ([]OutboxRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	rows, err := o.db.Query(`
		SELECT id, COALESCE(challenge_id, ''), kind, recipients, COALESCE(payload, ''), status, COALESCE(error, ''), created_at
		FROM notifications ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []OutboxRecord
	for rows.Next() {
		var r OutboxRecord
		var recipients string
		if err := rows.Scan(&r.ID, &r.ChallengeID, &r.Kind, &recipients, &r.Payload, &r.Status, &r.Error, &r.CreatedAt); err != nil {
			log.Error("Failed to scan notification row", "error", err)
			continue
		}
		if recipients != "" {
			r.Recipients = strings.Split(recipients, ",")
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
