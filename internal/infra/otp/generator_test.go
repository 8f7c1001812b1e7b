package otp

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate_SixDigitsNoLeadingZero(t *testing.T) {
	gen := NewGenerator()

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerator_Generate_NotConstant(t *testing.T) {
	gen := NewGenerator()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 50 draws from a 900k space collapsing to one value would mean a broken generator.
	assert.Greater(t, len(seen), 1)
}
