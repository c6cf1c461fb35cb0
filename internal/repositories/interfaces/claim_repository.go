package interfaces

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/models"
)

type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	// FindActiveByEmail returns the non-expired claim for a
	// (campaign, normalized email) pair, or nil when none exists.
	FindActiveByEmail(ctx context.Context, campaignID primitive.ObjectID, email string) (*models.Claim, error)

	ListByCampaign(ctx context.Context, campaignID primitive.ObjectID, limit int) ([]*models.Claim, error)

	// IncrementDownloadCount bumps the informational download counter.
	IncrementDownloadCount(ctx context.Context, id primitive.ObjectID) error

	// ListStaleByStatus returns claims in the given status created
	// before the cutoff. Used by the expiry/recovery sweep.
	ListStaleByStatus(ctx context.Context, status models.ClaimStatus, before time.Time, limit int) ([]*models.Claim, error)
}
