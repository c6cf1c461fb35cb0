package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

type EmailContent struct {
	Subject string
	HTML    string
	Text    string
}

type verificationEmailData struct {
	CampaignTitle       string
	CampaignDescription string
	ClaimNumber         int
	VerificationURL     string
}

var verificationHTMLTemplate = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Verify Your LazyMint Claim</title>
</head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #333;">LazyMint</h1>
  </div>

  <h2 style="color: #333;">Verify Your Claim</h2>

  <p>Congratulations! You've successfully claimed <strong>Claim #{{.ClaimNumber}}</strong> for the campaign:</p>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin: 0; color: #333;">{{.CampaignTitle}}</h3>
    <p style="margin: 10px 0 0 0; color: #666;">{{.CampaignDescription}}</p>
  </div>

  <p>To complete your claim and receive your digital ticket, please verify your email address by clicking the button below:</p>

  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.VerificationURL}}"
       style="background: #007bff; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
      Verify Email &amp; Get Ticket
    </a>
  </div>

  <p style="color: #666; font-size: 14px;">
    If the button doesn't work, copy and paste this link into your browser:<br>
    <a href="{{.VerificationURL}}">{{.VerificationURL}}</a>
  </p>

  <p style="color: #666; font-size: 14px;">
    This verification link will expire in 24 hours.
  </p>

  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">

  <p style="color: #999; font-size: 12px; text-align: center;">
    This email was sent because you claimed a digital ticket on LazyMint.<br>
    If you didn't make this claim, you can safely ignore this email.
  </p>
</body>
</html>`))

// VerificationEmail builds the claim verification message for a pending
// claim. The link carries the claim id and its single-use token.
func VerificationEmail(campaignTitle, campaignDescription string, claimNumber int, verificationURL string) (*EmailContent, error) {
	data := verificationEmailData{
		CampaignTitle:       campaignTitle,
		CampaignDescription: campaignDescription,
		ClaimNumber:         claimNumber,
		VerificationURL:     verificationURL,
	}

	var html bytes.Buffer
	if err := verificationHTMLTemplate.Execute(&html, data); err != nil {
		return nil, err
	}

	text := fmt.Sprintf(`LazyMint - Verify Your Claim

Congratulations! You've successfully claimed Claim #%d for: %s

To complete your claim and receive your digital ticket, please verify your email address by visiting:
%s

This verification link will expire in 24 hours.

If you didn't make this claim, you can safely ignore this email.
`, claimNumber, campaignTitle, verificationURL)

	return &EmailContent{
		Subject: fmt.Sprintf("Verify your claim for %q - Claim #%d", campaignTitle, claimNumber),
		HTML:    html.String(),
		Text:    text,
	}, nil
}
