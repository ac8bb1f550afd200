// Package domain defines the core entities of the TechnoZen review platform.
package domain

import "time"

// Role represents the user's permission level in the system.
// Roles are independent: an admin is not a moderator and vice versa.
type Role string

const (
	// RoleAdmin grants user management access.
	RoleAdmin Role = "admin"
	// RoleModerator grants product moderation access.
	RoleModerator Role = "moderator"
	// RoleNone is the default role for newly registered users.
	RoleNone Role = ""
)

// User represents a registered account, keyed by email.
// Users are created on first login and never deleted.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsModerator returns true if the user holds the moderator role.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
