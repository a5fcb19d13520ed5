package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVerificationCodeFormat(t *testing.T) {
	code, exp, err := NewVerificationCode()
	require.NoError(t, err)

	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q in code %q", ch, code)
	}
	assert.Equal(t, strings.ToUpper(code), code)

	now := time.Now().UTC()
	assert.WithinDuration(t, now.Add(CodeTTL), exp, 2*time.Second)
}

func TestNewVerificationCodeVaries(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, _, err := NewVerificationCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 20 draws from a 36^6 space should essentially never collide.
	assert.Greater(t, len(seen), 1)
}
