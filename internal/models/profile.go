package models

import "time"

// Role is the closed set of account roles. Authorization decisions go
// through the authz package rather than comparing these strings inline.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleTherapist Role = "therapist"
	RoleChild     Role = "child"
	RoleParent    Role = "parent"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleTherapist, RoleChild, RoleParent:
		return true
	}
	return false
}

// Profile represents a user account in the system
type Profile struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents an authenticated session
type Session struct {
	ID        string
	ProfileID string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// PasswordResetToken represents a token for password reset
type PasswordResetToken struct {
	Token     string
	ProfileID string
	ExpiresAt time.Time
	CreatedAt time.Time
	Used      bool
}

// IsExpired checks if the reset token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// ParentChildLink associates a parent profile with a child profile.
// Created by a therapist; grants the parent read access to the child's
// aggregated progress and nothing else.
type ParentChildLink struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	ChildID   string    `json:"child_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
