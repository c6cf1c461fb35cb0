package interfaces

import (
	"context"

	"lazymint/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error)
	Update(ctx context.Context, uid string, updates map[string]interface{}) error
	Delete(ctx context.Context, uid string) error

	// IncrementCampaignCount adjusts the denormalized campaign counter.
	// Negative deltas floor at zero.
	IncrementCampaignCount(ctx context.Context, uid string, delta int) error
}
