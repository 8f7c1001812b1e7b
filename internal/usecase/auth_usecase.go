// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new customer account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput defines the data required for a customer to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RequestPasswordResetInput defines the data required to start a password reset.
type RequestPasswordResetInput struct {
	Email string
}

// VerifyResetOTPInput defines the data required to verify a reset code.
type VerifyResetOTPInput struct {
	Email string
	Code  string
}

// ChangePasswordInput defines the data required to set a new password.
// UserID comes from the verified reset token, never from the request body.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's basic information.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        *entity.User
}

// RequestPasswordResetOutput returns when the issued verification code expires.
type RequestPasswordResetOutput struct {
	ExpiresAt time.Time
}

// VerifyResetOTPOutput returns the short-lived token that authorizes the
// subsequent password change.
type VerifyResetOTPOutput struct {
	ResetToken string
}

// AuthUsecase defines the interface for account and password-reset operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	RequestPasswordReset(ctx context.Context, input RequestPasswordResetInput) (*RequestPasswordResetOutput, error)
	VerifyResetOTP(ctx context.Context, input VerifyResetOTPInput) (*VerifyResetOTPOutput, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
}
