package models

import "time"

type SubscriptionTier string

const (
	SubscriptionTierFree  SubscriptionTier = "free"
	SubscriptionTierBasic SubscriptionTier = "basic"
	SubscriptionTierPro   SubscriptionTier = "pro"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
	SubscriptionStatusPastDue  SubscriptionStatus = "past_due"
)

// User mirrors the identity provider's record plus platform-side fields.
// The UID is the identity provider's stable subject id, not an ObjectID.
type User struct {
	UID                string             `json:"uid" bson:"_id"`
	Email              string             `json:"email" bson:"email" validate:"required,email"`
	DisplayName        string             `json:"display_name" bson:"display_name" validate:"required,min=2,max=50"`
	SubscriptionTier   SubscriptionTier   `json:"subscription_tier" bson:"subscription_tier"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" bson:"subscription_status"`
	StripeCustomerID   string             `json:"-" bson:"stripe_customer_id,omitempty"`
	CampaignCount      int                `json:"campaign_count" bson:"campaign_count"`
	CreatedAt          time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" bson:"updated_at"`
}

type UserCreateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"required,min=2,max=50"`
}

type UserUpdateRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=50"`
}

func (r *UserUpdateRequest) IsEmpty() bool {
	return r.Email == nil && r.DisplayName == nil
}
