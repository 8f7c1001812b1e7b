// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	"fmt"
	"strings"

	domainerrors "storefront/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator wraps a go-playground validator instance.
type RequestValidator struct {
	validate *playground.Validate
}

// New creates an Echo-compatible request validator.
func New() *RequestValidator {
	return &RequestValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound request struct against its validate tags.
// Every violated field is reported, not just the first one.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, describeFieldError(fieldErr))
	}

	return domainerrors.ErrValidationFailed.WithDetails(strings.Join(details, "; "))
}

func describeFieldError(fieldErr playground.FieldError) string {
	if fieldErr.Param() != "" {
		return fmt.Sprintf("%s failed on '%s=%s'", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param())
	}

	return fmt.Sprintf("%s failed on '%s'", fieldErr.Field(), fieldErr.Tag())
}
