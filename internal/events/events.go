// Package events carries the typed domain events every mutating
// operation emits. The presentation layer and the persistence writer
// subscribe to them; external consumers can receive the same stream
// over Kafka when configured.
package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Source identifies this service in every published event.
	Source = "scheduling-service"
	// Version is the event schema version.
	Version = "1.0"
)

// Event type names, one per mutating operation.
const (
	SlotCreated         = "slot.created"
	SlotDeleted         = "slot.deleted"
	SlotDone            = "slot.done"
	SlotsPublished      = "slots.published"
	AnnouncementCreated = "announcement.created"
	AnnouncementDeleted = "announcement.deleted"
	AnnouncementRead    = "announcement.read"
	AnnouncementHidden  = "announcement.hidden"
	NotificationCreated = "notification.created"
	AssignmentUpdated   = "assignment.updated"
	UserCreated         = "user.created"
	ResetWeekly         = "reset.weekly"
)

type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// New builds an event with a fresh ID and the service envelope filled in.
func New(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}
