package models

import "time"

// SlotDuration is the fixed length of every lesson slot. It is implied
// by the product and never stored on the slot itself.
const SlotDuration = 50 * time.Minute

// Slot is a single bookable unit of time owned by one tutor.
//
// Lifecycle: created as a draft (Published=false), made visible via a
// batch weekly publish, optionally reserved by one student, optionally
// marked done, and purged at the next weekly reset.
type Slot struct {
	ID         string    `json:"id"`
	TutorID    string    `json:"tutor_id"`
	When       time.Time `json:"when"`
	ReservedBy *string   `json:"reserved_by"`
	Done       bool      `json:"done"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReservedByStudent reports whether the slot is held by the given student.
func (s *Slot) ReservedByStudent(studentID string) bool {
	return s.ReservedBy != nil && *s.ReservedBy == studentID
}

// Reserved reports whether any student holds the slot.
func (s *Slot) Reserved() bool {
	return s.ReservedBy != nil
}
