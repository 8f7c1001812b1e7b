package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/http/validator"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyStubUsecase records the verify input and returns a fixed token.
type verifyStubUsecase struct {
	usecase.AuthUsecase

	gotInput usecase.VerifyResetOTPInput
}

func (s *verifyStubUsecase) VerifyResetOTP(_ context.Context, input usecase.VerifyResetOTPInput) (*usecase.VerifyResetOTPOutput, error) {
	s.gotInput = input

	return &usecase.VerifyResetOTPOutput{ResetToken: "signed-reset-token"}, nil
}

func newVerifyContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/auth/password/verify", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthHandler_VerifyResetOTP_WireFormat(t *testing.T) {
	uc := &verifyStubUsecase{}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	c, rec := newVerifyContext(t, `{"email":"user@example.com","otp":"482913"}`)

	require.NoError(t, h.VerifyResetOTP(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "482913", uc.gotInput.Code)
	assert.Equal(t, "user@example.com", uc.gotInput.Email)
	assert.Contains(t, rec.Body.String(), `"token":"signed-reset-token"`)
	assert.NotContains(t, rec.Body.String(), "resetToken")
}

func TestAuthHandler_VerifyResetOTP_RequiresOTPField(t *testing.T) {
	uc := &verifyStubUsecase{}
	h := NewAuthHandler(uc, slog.New(slog.NewTextHandler(io.Discard, nil)))

	// A body keyed "code" must not bind: the wire name is "otp".
	c, _ := newVerifyContext(t, `{"email":"user@example.com","code":"482913"}`)

	err := h.VerifyResetOTP(c)

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}
