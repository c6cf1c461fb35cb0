package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fan@Example.COM", "fan@example.com"},
		{"  fan@example.com  ", "fan@example.com"},
		{"fan@example.com", "fan@example.com"},
		{" MIXED.Case@Sub.Example.Org ", "mixed.case@sub.example.org"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.input))
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("fan@example.com"))
	assert.True(t, IsValidEmail("fan+tag@sub.example.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("@example.com"))
	assert.False(t, IsValidEmail(""))
}

func TestMaskEmail(t *testing.T) {
	masked := MaskEmail("fan@example.com")
	assert.NotEqual(t, "fan@example.com", masked)
	assert.Contains(t, masked, "@example.com")
}
