// Package store holds the authoritative in-memory dataset for the
// scheduling engine. A single Store handle is passed explicitly to
// every service; all mutation funnels through its methods so invariant
// checks cannot be skipped by ad hoc writes.
package store

import (
	"strings"
	"sync"
	"time"

	"github.com/tutorhub/scheduling-service/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users         []models.User
	assignments   map[string]string // studentID -> tutorID
	slots         []models.Slot
	announcements []models.Announcement
	notifications map[string][]models.Notification
	emailLog      []models.EmailLogEntry
	hidden        map[string][]string // userID -> hidden announcement IDs
	lastResetAt   *time.Time
}

func New() *Store {
	return &Store{
		assignments:   map[string]string{},
		notifications: map[string][]models.Notification{},
		hidden:        map[string][]string{},
	}
}

// ===== USERS =====

func (s *Store) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// UserByIdentifier resolves a login identifier against username or
// email, case-insensitively for email.
func (s *Store) UserByIdentifier(identifier string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == identifier || strings.EqualFold(u.Email, identifier) {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) UsernameTaken(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return true
		}
	}
	return false
}

func (s *Store) EmailTaken(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// Users returns all users in insertion order.
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// UsersByRole returns users matching any of the given roles, in
// insertion order. Iteration order is stable, which the assignment
// registry relies on for deterministic tie-breaking.
func (s *Store) UsersByRole(roles ...models.UserRole) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.User
	for _, u := range s.users {
		for _, r := range roles {
			if u.Role == r {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// ===== ASSIGNMENTS =====

func (s *Store) SetAssignment(studentID, tutorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[studentID] = tutorID
}

func (s *Store) AssignmentOf(studentID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tutorID, ok := s.assignments[studentID]
	return tutorID, ok
}

func (s *Store) Assignments() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.assignments))
	for k, v := range s.assignments {
		out[k] = v
	}
	return out
}

func (s *Store) AssigneeCount(tutorID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, t := range s.assignments {
		if t == tutorID {
			n++
		}
	}
	return n
}

// StudentsAssignedTo returns the IDs of students currently assigned to
// the tutor, in user insertion order.
func (s *Store) StudentsAssignedTo(tutorID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, u := range s.users {
		if s.assignments[u.ID] == tutorID {
			out = append(out, u.ID)
		}
	}
	return out
}

// ===== SLOTS =====

func (s *Store) AddSlot(slot models.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = append(s.slots, slot)
}

func (s *Store) SlotByID(id string) (models.Slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sl := range s.slots {
		if sl.ID == id {
			return sl, true
		}
	}
	return models.Slot{}, false
}

func (s *Store) Slots() []models.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

// UpdateSlot applies fn to the slot under the write lock and returns
// the updated copy.
func (s *Store) UpdateSlot(id string, fn func(*models.Slot)) (models.Slot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == id {
			fn(&s.slots[i])
			return s.slots[i], true
		}
	}
	return models.Slot{}, false
}

// ReserveSlot is the single serialization point for bookings: it sets
// ReservedBy under the write lock only when the slot is currently
// unreserved. When the slot is already held, the current holder is
// returned and the state is left untouched.
func (s *Store) ReserveSlot(id, studentID string) (slot models.Slot, holder *string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID != id {
			continue
		}
		if s.slots[i].ReservedBy != nil {
			h := *s.slots[i].ReservedBy
			return s.slots[i], &h, true
		}
		sid := studentID
		s.slots[i].ReservedBy = &sid
		return s.slots[i], nil, true
	}
	return models.Slot{}, nil, false
}

// PublishWeek flips all of the tutor's unpublished slots inside
// [weekStart, weekStart+7d) in one critical section, so readers never
// observe a partial publish. Returns copies of the slots published.
func (s *Store) PublishWeek(tutorID string, weekStart time.Time) []models.Slot {
	end := weekStart.AddDate(0, 0, 7)
	s.mu.Lock()
	defer s.mu.Unlock()
	var published []models.Slot
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.TutorID != tutorID || sl.Published {
			continue
		}
		if sl.When.Before(weekStart) || !sl.When.Before(end) {
			continue
		}
		sl.Published = true
		published = append(published, *sl)
	}
	return published
}

func (s *Store) RemoveSlot(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return true
		}
	}
	return false
}

// PurgeSlots removes every slot and returns how many were dropped.
func (s *Store) PurgeSlots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.slots)
	s.slots = nil
	return n
}

// ===== ANNOUNCEMENTS =====

// AddAnnouncement prepends, keeping most-recent-first ordering.
func (s *Store) AddAnnouncement(a models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements = append([]models.Announcement{a}, s.announcements...)
}

func (s *Store) AnnouncementByID(id string) (models.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.announcements {
		if a.ID == id {
			return a, true
		}
	}
	return models.Announcement{}, false
}

func (s *Store) Announcements() []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Announcement, len(s.announcements))
	copy(out, s.announcements)
	return out
}

func (s *Store) RemoveAnnouncement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.announcements {
		if s.announcements[i].ID == id {
			s.announcements = append(s.announcements[:i], s.announcements[i+1:]...)
			return true
		}
	}
	return false
}

// MarkAnnouncementRead adds the user to the reader set. The second
// return reports whether the announcement exists; the first whether
// the set actually changed.
func (s *Store) MarkAnnouncementRead(id, userID string) (changed, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.announcements {
		if s.announcements[i].ID != id {
			continue
		}
		if s.announcements[i].IsReadBy(userID) {
			return false, true
		}
		s.announcements[i].ReadBy = append(s.announcements[i].ReadBy, userID)
		return true, true
	}
	return false, false
}

// ===== NOTIFICATIONS =====

// PushNotification prepends, keeping most-recent-first ordering.
func (s *Store) PushNotification(userID string, n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications[userID] = append([]models.Notification{n}, s.notifications[userID]...)
}

func (s *Store) NotificationsFor(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.notifications[userID]
	out := make([]models.Notification, len(list))
	copy(out, list)
	return out
}

func (s *Store) MarkNotificationRead(userID, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return true
		}
	}
	return false
}

func (s *Store) RemoveNotification(userID, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == notificationID {
			s.notifications[userID] = append(list[:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ClearNotifications(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.notifications[userID])
	delete(s.notifications, userID)
	return n
}

// ===== EMAIL LOG =====

func (s *Store) AppendEmail(e models.EmailLogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emailLog = append(s.emailLog, e)
}

func (s *Store) EmailLog() []models.EmailLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EmailLogEntry, len(s.emailLog))
	copy(out, s.emailLog)
	return out
}

// ===== HIDDEN ANNOUNCEMENTS =====

// HideAnnouncement adds the announcement to the user's personal hidden
// set. Idempotent: a second call reports no change.
func (s *Store) HideAnnouncement(userID, announcementID string) (changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.hidden[userID] {
		if id == announcementID {
			return false
		}
	}
	s.hidden[userID] = append(s.hidden[userID], announcementID)
	return true
}

func (s *Store) IsHidden(userID, announcementID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.hidden[userID] {
		if id == announcementID {
			return true
		}
	}
	return false
}

func (s *Store) HiddenFor(userID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.hidden[userID]))
	copy(out, s.hidden[userID])
	return out
}

// ===== WEEKLY RESET BOOKKEEPING =====

func (s *Store) LastWeeklyResetAt() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastResetAt == nil {
		return nil
	}
	t := *s.lastResetAt
	return &t
}

func (s *Store) SetLastWeeklyResetAt(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResetAt = &t
}

