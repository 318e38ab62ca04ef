package events

import "time"

// Payload types carried in Event.Data, one per event family.

type SlotPayload struct {
	SlotID  string    `json:"slot_id"`
	TutorID string    `json:"tutor_id"`
	When    time.Time `json:"when"`
}

type SlotsPublishedPayload struct {
	TutorID   string      `json:"tutor_id"`
	WeekStart time.Time   `json:"week_start"`
	SlotIDs   []string    `json:"slot_ids"`
	Days      []time.Time `json:"days"`
}

type AnnouncementPayload struct {
	AnnouncementID string `json:"announcement_id"`
	AuthorID       string `json:"author_id"`
	UserID         string `json:"user_id,omitempty"`
}

type NotificationPayload struct {
	UserID         string `json:"user_id"`
	NotificationID string `json:"notification_id"`
	Kind           string `json:"kind"`
}

type AssignmentPayload struct {
	StudentID string `json:"student_id"`
	TutorID   string `json:"tutor_id"`
}

type UserPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type ResetPayload struct {
	At     time.Time `json:"at"`
	Purged int       `json:"purged"`
}
