package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)

	other, err := MakeRandHexString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestMakeRandCode(t *testing.T) {
	code, err := MakeRandCode(LicenseCodeLength)
	require.NoError(t, err)
	assert.Len(t, code, LicenseCodeLength)
	for _, r := range code {
		isUpper := r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		assert.True(t, isUpper || isDigit, "unexpected rune %q", r)
	}
}

func TestMakeRandDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := MakeRandDigits(5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}
