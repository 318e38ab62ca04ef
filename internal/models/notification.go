package models

import "time"

type NotificationKind string

const (
	NotificationSlotsPublished NotificationKind = "slots_published"
	NotificationSlotReserved   NotificationKind = "slot_reserved"
	NotificationAnnouncement   NotificationKind = "announcement"
	NotificationSystem         NotificationKind = "system"
)

// Notification is an in-app message addressed to exactly one user.
// It is created only by the dispatcher and mutated only by its owner.
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// EmailLogEntry is an append-only mock record of an outbound email.
// No real transport is in scope; the log stands in for delivery.
type EmailLogEntry struct {
	To      string    `json:"to"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}
