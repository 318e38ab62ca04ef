package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTutor   UserRole = "tutor"
	RoleAdmin   UserRole = "admin"
)

// CanTeach reports whether the role may own slots, post announcements
// and receive student assignments.
func (r UserRole) CanTeach() bool {
	return r == RoleTutor || r == RoleAdmin
}

type User struct {
	ID       string   `json:"id"`
	FullName string   `json:"full_name"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`

	// Plaintext credential. Hardening is explicitly out of scope for
	// this service; the gateway terminates real authentication. Only
	// the snapshot round-trips this field, the API returns PublicUser.
	Password string `json:"password"`

	CreatedAt time.Time `json:"created_at"`
}

// PublicUser is the API-facing view of a user. The credential stays
// inside the process.
type PublicUser struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUsers maps a user list to its API view.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}
