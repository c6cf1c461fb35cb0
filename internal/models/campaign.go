package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusArchived  CampaignStatus = "archived"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusPaused,
		CampaignStatusCompleted, CampaignStatusArchived:
		return true
	}
	return false
}

type Campaign struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CreatorID           string             `json:"creator_id" bson:"creator_id" validate:"required"`
	Title               string             `json:"title" bson:"title" validate:"required,min=3,max=100"`
	Description         string             `json:"description" bson:"description" validate:"required,min=10,max=1000"`
	LogoURL             string             `json:"logo_url,omitempty" bson:"logo_url,omitempty"`
	TicketBackgroundURL string             `json:"ticket_background_url,omitempty" bson:"ticket_background_url,omitempty"`
	QRCodeURL           string             `json:"qr_code_url,omitempty" bson:"qr_code_url,omitempty"`
	MaxClaims           int                `json:"max_claims" bson:"max_claims" validate:"required,min=1,max=10000"`
	CurrentClaims       int                `json:"current_claims" bson:"current_claims"`
	Status              CampaignStatus     `json:"status" bson:"status"`
	IsPublic            bool               `json:"is_public" bson:"is_public"`
	CreatedAt           time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" bson:"updated_at"`
}

// HasCapacity reports whether another claim slot can be admitted.
func (c *Campaign) HasCapacity() bool {
	return c.CurrentClaims < c.MaxClaims
}

type CampaignCreateRequest struct {
	Title               string `json:"title" validate:"required,min=3,max=100"`
	Description         string `json:"description" validate:"required,min=10,max=1000"`
	MaxClaims           int    `json:"max_claims" validate:"required,min=1,max=10000"`
	IsPublic            bool   `json:"is_public"`
	LogoURL             string `json:"logo_url" validate:"omitempty,url"`
	TicketBackgroundURL string `json:"ticket_background_url" validate:"omitempty,url"`
}

type CampaignUpdateRequest struct {
	Title               *string         `json:"title" validate:"omitempty,min=3,max=100"`
	Description         *string         `json:"description" validate:"omitempty,min=10,max=1000"`
	MaxClaims           *int            `json:"max_claims" validate:"omitempty,min=1,max=10000"`
	IsPublic            *bool           `json:"is_public"`
	Status              *CampaignStatus `json:"status"`
	LogoURL             *string         `json:"logo_url" validate:"omitempty,url"`
	TicketBackgroundURL *string         `json:"ticket_background_url" validate:"omitempty,url"`
}

// CampaignQRResult carries the generated QR asset and the claim link it
// encodes.
type CampaignQRResult struct {
	QRCodeURL string `json:"qr_code_url"`
	ClaimURL  string `json:"claim_url"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r *CampaignUpdateRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.MaxClaims == nil &&
		r.IsPublic == nil && r.Status == nil && r.LogoURL == nil &&
		r.TicketBackgroundURL == nil
}
