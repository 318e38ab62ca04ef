package models

import "time"

// Announcement is a broadcast from a tutor (or admin) to the students
// assigned to them at creation time. Recipients is a snapshot, not a
// live view: later reassignments never change who was addressed.
type Announcement struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Recipients []string  `json:"recipients"`
	ReadBy     []string  `json:"read_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsReadBy reports whether the user already appears in the reader set.
func (a *Announcement) IsReadBy(userID string) bool {
	for _, id := range a.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
