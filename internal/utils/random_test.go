package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateVerificationToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateVerificationToken()
		require.NoError(t, err)
		assert.Len(t, token, VerificationTokenBytes*2)
		assert.False(t, seen[token], "token generated twice")
		seen[token] = true
	}
}

func TestTokensEqual(t *testing.T) {
	token, err := GenerateVerificationToken()
	require.NoError(t, err)

	assert.True(t, TokensEqual(token, token))
	assert.False(t, TokensEqual(token, token+"0"))
	assert.False(t, TokensEqual(token, ""))
	assert.False(t, TokensEqual("", ""))
}
