package utils

import "time"

// Application constants
const (
	AppName = "LazyMint"

	// Response status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Campaign limits
	MinCampaignTitleLen       = 3
	MaxCampaignTitleLen       = 100
	MinCampaignDescriptionLen = 10
	MaxCampaignDescriptionLen = 1000
	MinMaxClaims              = 1
	MaxMaxClaims              = 10000

	// Listing caps
	MaxClaimListSize          = 100
	MaxUserCampaignListSize   = 50
	MaxPublicCampaignListSize = 20

	// Verification
	VerificationTokenBytes = 32
	VerificationTokenTTL   = 24 * time.Hour

	// File upload
	MaxLogoSize = 5 * 1024 * 1024 // 5MB

	// Asset dimensions
	LogoMaxWidth   = 300
	LogoMaxHeight  = 300
	TicketWidth    = 800
	TicketHeight   = 600
	TicketLogoSize = 150
	CampaignQRSize = 512
	TicketQRSize   = 150
)
