package validator

import "time"

// LoginRequest carries a username-or-email identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,max=100"`
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=3,max=100"`
	Role     string `json:"role" validate:"required,oneof=admin tutor student"`
}

type CreateSlotRequest struct {
	// TutorID defaults to the acting tutor; admins may set it to
	// create drafts on another tutor's behalf.
	TutorID string    `json:"tutor_id" validate:"omitempty"`
	When    time.Time `json:"when" validate:"required"`
}

type PublishWeekRequest struct {
	WeekStart time.Time `json:"week_start" validate:"required"`
}

type CreateAnnouncementRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body" validate:"max=2000"`
}

type AssignRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	TeacherID string `json:"teacher_id" validate:"required"`
}
