package store

import (
	"github.com/tutorhub/scheduling-service/internal/models"
)

// Snapshot copies the full dataset into the serializable document the
// persistence boundary writes. The copy is deep enough that callers
// can marshal it without racing later mutations.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := models.Snapshot{
		Users:               append([]models.User{}, s.users...),
		Assignments:         make(map[string]string, len(s.assignments)),
		Slots:               make([]models.Slot, len(s.slots)),
		Announcements:       make([]models.Announcement, len(s.announcements)),
		Notifications:       make(map[string][]models.Notification, len(s.notifications)),
		EmailLog:            append([]models.EmailLogEntry{}, s.emailLog...),
		HiddenAnnouncements: make(map[string][]string, len(s.hidden)),
	}
	for k, v := range s.assignments {
		snap.Assignments[k] = v
	}
	for i, sl := range s.slots {
		if sl.ReservedBy != nil {
			r := *sl.ReservedBy
			sl.ReservedBy = &r
		}
		snap.Slots[i] = sl
	}
	for i, a := range s.announcements {
		a.Recipients = append([]string{}, a.Recipients...)
		a.ReadBy = append([]string{}, a.ReadBy...)
		snap.Announcements[i] = a
	}
	for k, v := range s.notifications {
		snap.Notifications[k] = append([]models.Notification{}, v...)
	}
	for k, v := range s.hidden {
		snap.HiddenAnnouncements[k] = append([]string{}, v...)
	}
	if s.lastResetAt != nil {
		t := *s.lastResetAt
		snap.LastWeeklyResetAt = &t
	}
	return snap
}

// Restore replaces the dataset with the snapshot's contents. Missing
// containers are normalized to empty so old snapshots stay loadable.
func (s *Store) Restore(snap models.Snapshot) {
	snap.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = snap.Users
	s.assignments = snap.Assignments
	s.slots = snap.Slots
	s.announcements = snap.Announcements
	s.notifications = snap.Notifications
	s.emailLog = snap.EmailLog
	s.hidden = snap.HiddenAnnouncements
	s.lastResetAt = snap.LastWeeklyResetAt
}

// Empty reports whether the store has no users yet, which is the cue
// for seeding the initial dataset.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users) == 0
}
