package postgres

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	setOTPPattern     = `UPDATE "users" SET .*"otp_code"=\$1,\s*"otp_expires_at"=\$2.* WHERE id = \$4`
	consumeOTPPattern = `UPDATE "users" SET .*"otp_code"=\$1,\s*"otp_expires_at"=\$2.* WHERE email = \$4 AND otp_code = \$5 AND otp_expires_at > \$6`
)

func TestUserRepository_SetOTP_OverwritesPendingCode(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewUserRepository(db)

	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	// A single unconditional UPDATE of both columns: whatever code was
	// pending before is replaced, so only the newest code can ever verify.
	mock.ExpectExec(setOTPPattern).
		WithArgs("482913", expiresAt, sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetOTP(context.Background(), userID, "482913", expiresAt)

	require.NoError(t, err)
}

func TestUserRepository_SetOTP_UnknownUser(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewUserRepository(db)

	userID := uuid.New()
	expiresAt := time.Now().Add(15 * time.Minute)

	mock.ExpectExec(setOTPPattern).
		WithArgs("482913", expiresAt, sqlmock.AnyArg(), userID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetOTP(context.Background(), userID, "482913", expiresAt)

	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserRepository_ConsumeOTP_MatchedRowClearsCode(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewUserRepository(db)

	userID := uuid.New()
	now := time.Now()

	// The compare-and-swap carries the caller's clock into the expiry
	// comparison: a code is matched strictly while otp_expires_at > now.
	mock.ExpectExec(consumeOTPPattern).
		WithArgs(nil, nil, sqlmock.AnyArg(), "user@example.com", "482913", now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WithArgs("user@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "otp_code", "otp_expires_at"}).
			AddRow(userID, "user@example.com", "User", "hash", nil, nil))

	user, err := repo.ConsumeOTP(context.Background(), "user@example.com", "482913", now)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Nil(t, user.OTPCode)
	assert.Nil(t, user.OTPExpiresAt)
}

func TestUserRepository_ConsumeOTP_NoMatchingRow(t *testing.T) {
	db, mock := newGormWithMock(t)
	repo := NewUserRepository(db)

	now := time.Now()

	// Zero rows covers a wrong code, an expired code (otp_expires_at <= now
	// fails the > comparison) and an unknown email alike.
	mock.ExpectExec(consumeOTPPattern).
		WithArgs(nil, nil, sqlmock.AnyArg(), "user@example.com", "000000", now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	user, err := repo.ConsumeOTP(context.Background(), "user@example.com", "000000", now)

	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrOTPMismatch)
}
