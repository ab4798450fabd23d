package types

import "time"

// Role is the closed set of authorization levels a user can hold.
type Role string

const (
	// RoleCitizen is the default role for self-registered users.
	RoleCitizen Role = "citizen"

	// RoleOfficer is assigned to municipal staff who work complaints.
	RoleOfficer Role = "officer"

	// RoleAdmin has full access to the system.
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// User represents an account in the system.
// It contains identity, role, and audit metadata.
type User struct {
	// ID is the unique identifier of the user (UUID).
	ID string `json:"id" db:"id"`

	// Email is the user's email address. Unique across all users.
	Email string `json:"email" db:"email"`

	// FullName is the user's full display name.
	FullName string `json:"fullName" db:"full_name"`

	// Phone is the user's phone number, if provided.
	Phone string `json:"phone,omitempty" db:"phone"`

	// Role indicates the user's authorization level within the system.
	Role Role `json:"role" db:"role"`

	// IsVerified records whether the account passed verification.
	// Self-service signup marks accounts verified immediately; there is
	// no email-verification flow.
	IsVerified bool `json:"is_verified" db:"is_verified"`

	// LastLogin is the timestamp of the most recent successful login,
	// nil if the user has never logged in.
	LastLogin *time.Time `json:"last_login,omitempty" db:"last_login"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// UserProfile is the sanitized projection of a User returned by the
// auth endpoints.
type UserProfile struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Profile returns the sanitized projection of the user.
func (u User) Profile() UserProfile {
	return UserProfile{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role,
	}
}
