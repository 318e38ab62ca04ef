package models

import "time"

// Snapshot is the single serialized document the persistence boundary
// round-trips. Missing fields on load default to empty containers so
// older snapshots keep loading after schema additions.
type Snapshot struct {
	Users               []User                    `json:"users"`
	Assignments         map[string]string         `json:"assignments"`
	Slots               []Slot                    `json:"slots"`
	Announcements       []Announcement            `json:"announcements"`
	Notifications       map[string][]Notification `json:"notifications"`
	EmailLog            []EmailLogEntry           `json:"emailLog"`
	LastWeeklyResetAt   *time.Time                `json:"lastWeeklyResetAt"`
	HiddenAnnouncements map[string][]string       `json:"hiddenAnnouncements"`
}

// Normalize replaces nil containers with empty ones. Called after
// unmarshalling so consumers never branch on nil maps.
func (s *Snapshot) Normalize() {
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Assignments == nil {
		s.Assignments = map[string]string{}
	}
	if s.Slots == nil {
		s.Slots = []Slot{}
	}
	if s.Announcements == nil {
		s.Announcements = []Announcement{}
	}
	if s.Notifications == nil {
		s.Notifications = map[string][]Notification{}
	}
	if s.EmailLog == nil {
		s.EmailLog = []EmailLogEntry{}
	}
	if s.HiddenAnnouncements == nil {
		s.HiddenAnnouncements = map[string][]string{}
	}
}
