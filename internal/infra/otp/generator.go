// Package otp implements one-time code generation for password resets.
package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/pkg/errors"

	"storefront/internal/domain/service"
)

// The code space is 100000-999999: always six digits, never a leading zero.
const (
	codeMin  = 100000
	codeSpan = 900000
)

type generator struct{}

// NewGenerator returns a crypto/rand backed OTPGenerator.
func NewGenerator() service.OTPGenerator {
	return &generator{}
}

// Generate returns a 6-digit numeric code uniformly random over the code space.
func (g *generator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for otp")
	}

	return strconv.FormatInt(codeMin+n.Int64(), 10), nil
}
