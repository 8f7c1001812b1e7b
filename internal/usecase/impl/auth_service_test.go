package impl

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service        usecase.AuthUsecase
	txManager      *mockRepo.MockTransactionManager
	userRepo       *mockRepo.MockUserRepository
	hasher         *mockSvc.MockPasswordHasher
	tokenService   *mockSvc.MockTokenService
	otpGenerator   *mockSvc.MockOTPGenerator
	mailDispatcher *mockSvc.MockMailDispatcher
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	otpGenerator := mockSvc.NewMockOTPGenerator(t)
	mailDispatcher := mockSvc.NewMockMailDispatcher(t)

	svc := NewAuthService(AuthServiceParams{
		TxManager:      txManager,
		UserRepo:       userRepo,
		Hasher:         hasher,
		TokenService:   tokenService,
		OTPGenerator:   otpGenerator,
		MailDispatcher: mailDispatcher,
		Config:         newTestConfig(15 * time.Minute),
		Logger:         newDiscardLogger(),
	})

	return authServiceFixtures{
		service:        svc,
		txManager:      txManager,
		userRepo:       userRepo,
		hasher:         hasher,
		tokenService:   tokenService,
		otpGenerator:   otpGenerator,
		mailDispatcher: mailDispatcher,
	}
}

func newStoredUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        "test@example.com",
		PasswordHash: "stored_hash",
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:     "Test User",
		Email:    "Test@Example.com",
		Password: "LongPass123",
	}

	fixtures.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fixtures.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			factory := mockRepo.NewMockRepositoryFactory(t)
			userRepo := mockRepo.NewMockUserRepository(t)

			factory.EXPECT().UserRepo().Return(userRepo)

			userRepo.EXPECT().
				FindByEmail(ctx, "test@example.com").
				Return(nil, repository.ErrUserNotFound)

			userRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(factory)
		}).
		Return(nil)

	output, err := fixtures.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	// Emails are normalized before storage.
	assert.Equal(t, "test@example.com", output.User.Email)
	assert.Equal(t, "hashed_password", output.User.PasswordHash)
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.hasher.EXPECT().
		ValidatePasswordStrength("short").
		Return(errors.New("password must be at least 8 characters"))

	output, err := fixtures.service.Register(ctx, usecase.RegisterInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "short",
	})

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordStrength.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_Login_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	user := newStoredUser()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("LongPass123", user.PasswordHash).Return(true)
	fixtures.tokenService.EXPECT().GenerateAccessToken(user.ID).Return("access-token", nil)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "LongPass123",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, user.ID, output.User.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	user := newStoredUser()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.hasher.EXPECT().Check("wrong", user.PasswordHash).Return(false)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{
		Email:    user.Email,
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmailSameErrorAsWrongPassword(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.Login(ctx, usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_RequestPasswordReset_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	user := newStoredUser()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.otpGenerator.EXPECT().Generate().Return("482913", nil)

	var storedExpiry time.Time
	fixtures.userRepo.EXPECT().
		SetOTP(ctx, user.ID, "482913", mock.AnythingOfType("time.Time")).
		Run(func(ctx context.Context, userID uuid.UUID, code string, expiresAt time.Time) {
			storedExpiry = expiresAt
		}).
		Return(nil)

	fixtures.mailDispatcher.EXPECT().
		Send(ctx, mock.AnythingOfType("*service.Mail")).
		Run(func(ctx context.Context, mail *service.Mail) {
			assert.Equal(t, user.Email, mail.To)
			assert.Contains(t, mail.Text, "482913")
			assert.Contains(t, mail.HTML, "482913")
		}).
		Return(nil)

	output, err := fixtures.service.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{
		Email: user.Email,
	})

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), output.ExpiresAt, 5*time.Second)
	assert.Equal(t, storedExpiry, output.ExpiresAt)
}

func TestAuthService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.userRepo.EXPECT().
		FindByEmail(ctx, "nobody@example.com").
		Return(nil, repository.ErrUserNotFound)

	output, err := fixtures.service.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{
		Email: "nobody@example.com",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_RequestPasswordReset_MailFailureAfterCodeStored(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	user := newStoredUser()

	fixtures.userRepo.EXPECT().FindByEmail(ctx, user.Email).Return(user, nil)
	fixtures.otpGenerator.EXPECT().Generate().Return("111111", nil)
	// The code write succeeds; only the mail dispatch fails afterwards.
	fixtures.userRepo.EXPECT().
		SetOTP(ctx, user.ID, "111111", mock.AnythingOfType("time.Time")).
		Return(nil)
	fixtures.mailDispatcher.EXPECT().
		Send(ctx, mock.AnythingOfType("*service.Mail")).
		Return(errors.New("smtp connection refused"))

	output, err := fixtures.service.RequestPasswordReset(ctx, usecase.RequestPasswordResetInput{
		Email: user.Email,
	})

	require.Error(t, err)
	assert.Nil(t, output)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrMailDispatchFailed.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_VerifyResetOTP_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	user := newStoredUser()

	fixtures.userRepo.EXPECT().
		ConsumeOTP(ctx, user.Email, "482913", mock.AnythingOfType("time.Time")).
		Return(user, nil)
	fixtures.tokenService.EXPECT().GenerateResetToken(user.ID).Return("reset-token", nil)

	output, err := fixtures.service.VerifyResetOTP(ctx, usecase.VerifyResetOTPInput{
		Email: user.Email,
		Code:  "482913",
	})

	require.NoError(t, err)
	assert.Equal(t, "reset-token", output.ResetToken)
}

func TestAuthService_VerifyResetOTP_MismatchCollapsesToInvalidOTP(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	// Wrong code, expired code, already-consumed code and unknown email all
	// surface as the same repository error and the same client error.
	fixtures.userRepo.EXPECT().
		ConsumeOTP(ctx, "test@example.com", "000000", mock.AnythingOfType("time.Time")).
		Return(nil, repository.ErrOTPMismatch)

	output, err := fixtures.service.VerifyResetOTP(ctx, usecase.VerifyResetOTPInput{
		Email: "test@example.com",
		Code:  "000000",
	})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.hasher.EXPECT().ValidatePasswordStrength("NewLongPass123").Return(nil)
	fixtures.hasher.EXPECT().Hash("NewLongPass123").Return("new_hash", nil)
	fixtures.userRepo.EXPECT().UpdatePassword(ctx, userID, "new_hash").Return(nil)

	err := fixtures.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		NewPassword: "NewLongPass123",
	})

	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WeakPassword(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()

	fixtures.hasher.EXPECT().
		ValidatePasswordStrength("weak").
		Return(errors.New("password must contain at least one number"))

	err := fixtures.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      uuid.New(),
		NewPassword: "weak",
	})

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrPasswordStrength.ErrorCode(), appErr.ErrorCode())
}

func TestAuthService_ChangePassword_UnknownUser(t *testing.T) {
	fixtures := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fixtures.hasher.EXPECT().ValidatePasswordStrength("NewLongPass123").Return(nil)
	fixtures.hasher.EXPECT().Hash("NewLongPass123").Return("new_hash", nil)
	fixtures.userRepo.EXPECT().
		UpdatePassword(ctx, userID, "new_hash").
		Return(repository.ErrUserNotFound)

	err := fixtures.service.ChangePassword(ctx, usecase.ChangePasswordInput{
		UserID:      userID,
		NewPassword: "NewLongPass123",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}
