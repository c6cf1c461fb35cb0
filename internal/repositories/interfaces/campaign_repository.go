package interfaces

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/models"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign *models.Campaign) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// IncrementClaims adds one claim slot. The update is guarded so the
	// counter can never pass max_claims even under concurrent writers.
	IncrementClaims(ctx context.Context, id primitive.ObjectID) error

	// DecrementClaims releases one claim slot, flooring at zero.
	DecrementClaims(ctx context.Context, id primitive.ObjectID) error

	ListByCreator(ctx context.Context, creatorID string, limit int) ([]*models.Campaign, error)
	ListPublicActive(ctx context.Context, limit int) ([]*models.Campaign, error)
}
