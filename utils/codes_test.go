package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingNumberFormat(t *testing.T) {
	re := regexp.MustCompile(`^BK-\d{8}-[0-9A-F]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number, err := GenerateBookingNumber()
		require.NoError(t, err)
		assert.Regexp(t, re, number)
		seen[number] = true
	}
	// 50 draws from a 16^6 space should not all collide.
	assert.Greater(t, len(seen), 1)
}

func TestGenerateSecureToken(t *testing.T) {
	token, err := GenerateSecureToken(16)
	require.NoError(t, err)
	assert.Len(t, token, 32)

	_, err = GenerateSecureToken(0)
	assert.Error(t, err)
}
