package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationEmail(t *testing.T) {
	content, err := VerificationEmail("Launch Party", "First hundred fans", 7, "https://lazymint.example.com/verify?claimId=abc&token=def")
	require.NoError(t, err)

	assert.Contains(t, content.Subject, "Launch Party")
	assert.Contains(t, content.Subject, "#7")
	assert.Contains(t, content.HTML, "https://lazymint.example.com/verify?claimId=abc&amp;token=def")
	assert.Contains(t, content.Text, "https://lazymint.example.com/verify?claimId=abc&token=def")
	assert.Contains(t, content.HTML, "Launch Party")
}

func TestVerificationEmailEscapesContent(t *testing.T) {
	content, err := VerificationEmail("<script>alert(1)</script>", "desc", 1, "https://example.com/verify")
	require.NoError(t, err)

	assert.NotContains(t, content.HTML, "<script>")
	assert.Contains(t, content.HTML, "&lt;script&gt;")
}
