package impl

import (
	"io"
	"log/slog"
	"time"

	"storefront/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(otpTTL time.Duration) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost: 12,
		},
		OTP: &config.OTPConfig{
			TTL: otpTTL,
		},
	}
}
