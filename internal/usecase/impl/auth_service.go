// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultOTPTTL = 15 * time.Minute

// authService implements the AuthUsecase interface.
type authService struct {
	txManager      repository.TransactionManager
	userRepo       repository.UserRepository
	hasher         service.PasswordHasher
	tokenService   service.TokenService
	otpGenerator   service.OTPGenerator
	mailDispatcher service.MailDispatcher
	otpTTL         time.Duration
	logger         *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	UserRepo       repository.UserRepository
	Hasher         service.PasswordHasher
	TokenService   service.TokenService
	OTPGenerator   service.OTPGenerator
	MailDispatcher service.MailDispatcher
	Config         *config.Config
	Logger         *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	otpTTL := defaultOTPTTL
	if params.Config != nil && params.Config.OTP != nil && params.Config.OTP.TTL > 0 {
		otpTTL = params.Config.OTP.TTL
	}

	return &authService{
		txManager:      params.TxManager,
		userRepo:       params.UserRepo,
		hasher:         params.Hasher,
		tokenService:   params.TokenService,
		otpGenerator:   params.OTPGenerator,
		mailDispatcher: params.MailDispatcher,
		otpTTL:         otpTTL,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the customer registration process.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrPasswordStrength.WithDetails(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, findErr := userRepo.FindByEmail(ctx, email)
		if findErr == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check existing account")
		}

		newUser := &entity.User{
			Name:         input.Name,
			Email:        email,
			PasswordHash: hashedPassword,
		}
		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			return errors.Wrap(createErr, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registeredUser.ID))

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// Login verifies credentials and issues an access token.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user during login")
	}

	// bcrypt comparison happens outside any transaction (CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// RequestPasswordReset issues a one-time verification code and mails it to
// the account's address. Requesting again overwrites any previous code.
func (srv *authService) RequestPasswordReset(ctx context.Context, input usecase.RequestPasswordResetInput) (*usecase.RequestPasswordResetOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting password reset request", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Password reset request failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user for password reset")
	}

	code, err := srv.otpGenerator.Generate()
	if err != nil {
		srv.log(ctx).Error("Failed to generate verification code", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate verification code")
	}

	expiresAt := time.Now().Add(srv.otpTTL)
	if err := srv.userRepo.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		srv.log(ctx).Error("Failed to store verification code", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store verification code")
	}

	mail := buildResetMail(user, code, srv.otpTTL)
	if err := srv.mailDispatcher.Send(ctx, mail); err != nil {
		// The code is already persisted; the client may retry the request to
		// trigger a fresh mail without invalidating account state.
		srv.log(ctx).Error("Failed to dispatch verification mail", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, domainerrors.ErrMailDispatchFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Debug("Password reset code issued", slog.Any("userID", user.ID), slog.Time("expiresAt", expiresAt))

	return &usecase.RequestPasswordResetOutput{ExpiresAt: expiresAt}, nil
}

// VerifyResetOTP consumes the verification code and issues a short-lived
// reset-scoped token. A wrong, expired, or already-consumed code all map to
// the same error.
func (srv *authService) VerifyResetOTP(ctx context.Context, input usecase.VerifyResetOTPInput) (*usecase.VerifyResetOTPOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Verifying password reset code", slog.String("email", email))

	user, err := srv.userRepo.ConsumeOTP(ctx, email, input.Code, time.Now())
	if err != nil {
		srv.log(ctx).Warn("Password reset verification failed", slog.String("email", email), slog.Any("error", err))

		if errors.Is(err, repository.ErrOTPMismatch) || errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidOTP
		}

		return nil, errors.Wrap(err, "failed to consume verification code")
	}

	resetToken, err := srv.tokenService.GenerateResetToken(user.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate reset token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate reset token")
	}

	srv.log(ctx).Debug("Password reset code verified", slog.Any("userID", user.ID))

	return &usecase.VerifyResetOTPOutput{ResetToken: resetToken}, nil
}

// ChangePassword sets a new password for a user holding a verified reset token.
func (srv *authService) ChangePassword(ctx context.Context, input usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Starting password change", slog.Any("userID", input.UserID))

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		srv.log(ctx).Warn("Password validation failed during change", slog.Any("userID", input.UserID), slog.Any("error", err))

		return domainerrors.ErrPasswordStrength.WithDetails(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("userID", input.UserID), slog.Any("error", err))

		return errors.Wrap(err, "failed to hash new password")
	}

	if err := srv.userRepo.UpdatePassword(ctx, input.UserID, hashedPassword); err != nil {
		srv.log(ctx).Warn("Failed to update password", slog.Any("userID", input.UserID), slog.Any("error", err))

		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Debug("Password changed", slog.Any("userID", input.UserID))

	return nil
}

func buildResetMail(user *entity.User, code string, ttl time.Duration) *service.Mail {
	minutes := int(ttl.Minutes())

	return &service.Mail{
		To:      user.Email,
		Subject: "重設密碼驗證碼",
		Text: fmt.Sprintf(
			"您好 %s：\n\n您的重設密碼驗證碼為 %s，有效時間 %d 分鐘。\n若您未申請重設密碼，請忽略此信件。",
			user.Name, code, minutes,
		),
		HTML: fmt.Sprintf(
			"<p>您好 %s：</p><p>您的重設密碼驗證碼為 <strong>%s</strong>，有效時間 %d 分鐘。</p><p>若您未申請重設密碼，請忽略此信件。</p>",
			user.Name, code, minutes,
		),
	}
}
