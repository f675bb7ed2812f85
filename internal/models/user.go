package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Login uses the email address; the
// first/last name pair is optional and only affects display.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique, used for login).
	Email string

	FirstName string
	LastName  string

	// AvatarURL is the profile picture URL, empty if none was set.
	AvatarURL string

	// PasswordHash is the bcrypt hash of the user's password. Empty for
	// placeholder users created by adding an unknown email to a group.
	PasswordHash string

	CreatedAt time.Time
}

// NewUser creates a user with a fresh ID and creation timestamp.
func NewUser(email, firstName, lastName, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}

// DisplayName returns "First Last" when any name is set, otherwise the
// local part of the email address.
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name != "" {
		return name
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
