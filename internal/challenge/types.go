package challenge

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for challenges.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status is the lifecycle state of a challenge.
//
//	pending  -> accepted | declined | expired
//	accepted -> removed-by-match-recording | expired_unplayed
//
// declined, expired and expired_unplayed are terminal.
type Status string

const (
	StatusPending         Status = "pending"
	StatusAccepted        Status = "accepted"
	StatusDeclined        Status = "declined"
	StatusExpired         Status = "expired"
	StatusExpiredUnplayed Status = "expired_unplayed"
)

// Terminal reports whether no further transition is possible out of s.
func (s Status) Terminal() bool {
	switch s {
	case StatusDeclined, StatusExpired, StatusExpiredUnplayed:
		return true
	}
	return false
}

// NotificationKind names the per-challenge notification markers used to keep
// each notification at-most-once.
type NotificationKind string

const (
	NotifCreated       NotificationKind = "created"
	NotifWeekReminder  NotificationKind = "week_reminder"
	NotifFinalWeek     NotificationKind = "final_week"
	NotifFinalDeadline NotificationKind = "final_deadline"
)

const (
	// Window is how long a challenge stays open from creation to expiry.
	Window = 21 * 24 * time.Hour
	// Grace is the window after an accepted challenge's deadline before it
	// is marked unplayed.
	Grace = 24 * time.Hour
	// WeekReminderAge is when a pending challenge earns its first reminder.
	WeekReminderAge = 7 * 24 * time.Hour
	// FinalWeekAge is when an accepted challenge earns its final-week reminder.
	FinalWeekAge = 14 * 24 * time.Hour
)

// Challenge is a request by a lower-ranked player to play a higher-ranked one.
type Challenge struct {
	ID           string `json:"id"`
	ChallengerID string `json:"challenger_id"`
	ChallengedID string `json:"challenged_id"`
	Status       Status `json:"status"`
	CreatedDate  int64  `json:"created_date"`
	ExpiryDate   int64  `json:"expiry_date"`

	// Unix timestamps of sent notifications, nil until sent.
	NotifiedCreated       *int64 `json:"notified_created,omitempty"`
	NotifiedWeekReminder  *int64 `json:"notified_week_reminder,omitempty"`
	NotifiedFinalWeek     *int64 `json:"notified_final_week,omitempty"`
	NotifiedFinalDeadline *int64 `json:"notified_final_deadline,omitempty"`
}

// Created returns the creation time.
func (c *Challenge) Created() time.Time { return time.Unix(c.CreatedDate, 0) }

// Expiry returns the expiry deadline.
func (c *Challenge) Expiry() time.Time { return time.Unix(c.ExpiryDate, 0) }

// Notified reports whether the given notification has already been sent.
func (c *Challenge) Notified(kind NotificationKind) bool {
	switch kind {
	case NotifCreated:
		return c.NotifiedCreated != nil
	case NotifWeekReminder:
		return c.NotifiedWeekReminder != nil
	case NotifFinalWeek:
		return c.NotifiedFinalWeek != nil
	case NotifFinalDeadline:
		return c.NotifiedFinalDeadline != nil
	}
	return false
}

// Involves reports whether the player is either party of the challenge.
func (c *Challenge) Involves(playerID string) bool {
	return c.ChallengerID == playerID || c.ChallengedID == playerID
}
