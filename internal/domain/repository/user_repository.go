// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrOTPMismatch is returned when the atomic consume of an OTP matches no
	// row: wrong code, expired code or unknown email. The causes are not
	// distinguished.
	ErrOTPMismatch = errors.New("otp code did not match a valid pending reset")
)

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their lowercase-normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// SetOTP atomically replaces the user's pending OTP pair. A fresh reset
	// request fully overwrites any previous code and expiry.
	SetOTP(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) error

	// ConsumeOTP performs a single compare-and-swap: it matches the user by
	// email, code and a still-valid expiry, clears the OTP fields and returns
	// the user. A verified code can therefore never be replayed. It returns
	// ErrOTPMismatch when nothing matched.
	ConsumeOTP(ctx context.Context, email, code string, now time.Time) (*entity.User, error)

	// UpdatePassword overwrites the stored credential for the given user.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
