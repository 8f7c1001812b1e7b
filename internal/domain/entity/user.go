// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the core account entity. The email is the login identifier and is
// always stored lowercase-normalized. The OTP pair is set when a password
// reset is requested and cleared atomically when the code is consumed.
type User struct {
	ID           uuid.UUID  // The unique identifier for the user account.
	Email        string     // Lowercase-normalized login identifier, unique across the system.
	Name         string     // The user's display name.
	PasswordHash string     // Stores the bcrypt-hashed password.
	OTPCode      *string    // Pending one-time code for password reset. Nil when no reset is in flight.
	OTPExpiresAt *time.Time // Absolute expiry of OTPCode. The code is valid only while now < OTPExpiresAt.
	CreatedAt    time.Time  // Timestamp of when this account was created.
	UpdatedAt    time.Time  // Timestamp of the last modification to this account.
}

// NormalizeEmail canonicalizes an email address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
