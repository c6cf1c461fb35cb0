package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
)

// GenerateVerificationToken returns a hex-encoded token with
// VerificationTokenBytes bytes of entropy (256 bits by default).
func GenerateVerificationToken() (string, error) {
	b := make([]byte, VerificationTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokensEqual compares two tokens in constant time. An empty token never
// matches; consumed tokens are stored as empty.
func TokensEqual(a, b string) bool {
	if a == "" || b == "" || len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
