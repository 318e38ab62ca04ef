package services

import (
	"errors"
	"fmt"
)

// Not-found sentinels.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrSlotNotFound         = errors.New("slot not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Validation failures.
var (
	ErrEmptyTitle     = errors.New("announcement title must not be blank")
	ErrUsernameExists = errors.New("a user with this username already exists")
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrUnknownTeacher = errors.New("teacher does not reference a tutor or admin")
	ErrNoTeachers     = errors.New("no tutor or admin available for assignment")
)

// Temporal constraint violations.
var (
	ErrWeekInPast = errors.New("target week is already in the past")
	ErrDayInPast  = errors.New("target day is already in the past")
	ErrSlotInPast = errors.New("slot time is already in the past")
)

// State conflicts.
var (
	ErrNothingToPublish       = errors.New("no draft slots in the requested week")
	ErrSlotNotPublished       = errors.New("slot is not published")
	ErrAlreadyReservedByOther = errors.New("slot is already reserved by another student")
	ErrAlreadyReservedBySelf  = errors.New("slot is already reserved by this student")
)

// PermissionError reports that the actor lacks the role or ownership
// the operation requires.
type PermissionError struct {
	UserID   string
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID, resource, action, reason string) *PermissionError {
	return &PermissionError{UserID: userID, Resource: resource, Action: action, Reason: reason}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s may not %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSlotNotFound) ||
		errors.Is(err, ErrAnnouncementNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}

func IsTemporalError(err error) bool {
	return errors.Is(err, ErrWeekInPast) ||
		errors.Is(err, ErrDayInPast) ||
		errors.Is(err, ErrSlotInPast)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrNothingToPublish) ||
		errors.Is(err, ErrSlotNotPublished) ||
		errors.Is(err, ErrAlreadyReservedByOther) ||
		errors.Is(err, ErrAlreadyReservedBySelf)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrUsernameExists) ||
		errors.Is(err, ErrEmailExists) ||
		errors.Is(err, ErrUnknownTeacher) ||
		errors.Is(err, ErrNoTeachers)
}
