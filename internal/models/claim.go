package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusVerified  ClaimStatus = "verified"
	ClaimStatusCompleted ClaimStatus = "completed"
	ClaimStatusExpired   ClaimStatus = "expired"
)

type Claim struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CampaignID        primitive.ObjectID `json:"campaign_id" bson:"campaign_id" validate:"required"`
	UserID            string             `json:"user_id,omitempty" bson:"user_id,omitempty"`
	CreatorID         string             `json:"creator_id" bson:"creator_id"`
	ClaimNumber       int                `json:"claim_number" bson:"claim_number"`
	Email             string             `json:"email" bson:"email" validate:"required,email"`
	Status            ClaimStatus        `json:"status" bson:"status"`
	VerificationToken string             `json:"-" bson:"verification_token,omitempty"`
	VerifiedAt        *time.Time         `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	TicketURL         string             `json:"ticket_url,omitempty" bson:"ticket_url,omitempty"`
	DownloadCount     int                `json:"download_count" bson:"download_count"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

type ClaimRequest struct {
	CampaignID string `json:"campaign_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
}

type ClaimVerificationRequest struct {
	ClaimID           string `json:"claim_id" validate:"required"`
	VerificationToken string `json:"verification_token" validate:"required"`
}

// ClaimSubmissionResult is returned to the claimant after admission.
type ClaimSubmissionResult struct {
	ClaimID       string `json:"claim_id"`
	ClaimNumber   int    `json:"claim_number"`
	CampaignTitle string `json:"campaign_title"`
}

// ClaimVerificationResult is returned once a token has been consumed.
type ClaimVerificationResult struct {
	ClaimID     string      `json:"claim_id"`
	ClaimNumber int         `json:"claim_number"`
	TicketURL   string      `json:"ticket_url,omitempty"`
	Status      ClaimStatus `json:"status"`
}

// ClaimStatusView is the public projection of a claim. It never carries
// the claimant email or the verification token.
type ClaimStatusView struct {
	ClaimID     string      `json:"claim_id"`
	ClaimNumber int         `json:"claim_number"`
	Status      ClaimStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	VerifiedAt  *time.Time  `json:"verified_at,omitempty"`
	TicketURL   string      `json:"ticket_url,omitempty"`
}

// ClaimListEntry is the creator-facing projection used in claim listings.
type ClaimListEntry struct {
	ClaimID       string      `json:"claim_id"`
	ClaimNumber   int         `json:"claim_number"`
	Email         string      `json:"email"`
	Status        ClaimStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	VerifiedAt    *time.Time  `json:"verified_at,omitempty"`
	DownloadCount int         `json:"download_count"`
}

func (c *Claim) StatusView() *ClaimStatusView {
	return &ClaimStatusView{
		ClaimID:     c.ID.Hex(),
		ClaimNumber: c.ClaimNumber,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		VerifiedAt:  c.VerifiedAt,
		TicketURL:   c.TicketURL,
	}
}

func (c *Claim) ListEntry() *ClaimListEntry {
	return &ClaimListEntry{
		ClaimID:       c.ID.Hex(),
		ClaimNumber:   c.ClaimNumber,
		Email:         c.Email,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
		VerifiedAt:    c.VerifiedAt,
		DownloadCount: c.DownloadCount,
	}
}
