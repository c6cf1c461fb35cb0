package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
)

type claimRepository struct {
	collection *mongo.Collection
}

func NewClaimRepository(db *mongo.Database) interfaces.ClaimRepository {
	return &claimRepository{
		collection: db.Collection("claims"),
	}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	claim.ID = primitive.NewObjectID()
	claim.CreatedAt = time.Now()
	claim.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, claim)
	if err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}

	return nil
}

func (r *claimRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Claim, error) {
	var claim models.Claim
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&claim)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}

	return &claim, nil
}

func (r *claimRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	set := bson.M{"updated_at": time.Now()}
	var unset bson.M

	for key, value := range updates {
		// A nil value removes the field; tokens must not be readable
		// after consumption.
		if value == nil {
			if unset == nil {
				unset = bson.M{}
			}
			unset[key] = ""
			continue
		}
		set[key] = value
	}

	update := bson.M{"$set": set}
	if unset != nil {
		update["$unset"] = unset
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update claim: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrClaimNotFound
	}

	return nil
}

func (r *claimRepository) FindActiveByEmail(ctx context.Context, campaignID primitive.ObjectID, email string) (*models.Claim, error) {
	filter := bson.M{
		"campaign_id": campaignID,
		"email":       email,
		"status":      bson.M{"$ne": models.ClaimStatusExpired},
	}

	var claim models.Claim
	err := r.collection.FindOne(ctx, filter).Decode(&claim)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up claim by email: %w", err)
	}

	return &claim, nil
}

func (r *claimRepository) ListByCampaign(ctx context.Context, campaignID primitive.ObjectID, limit int) ([]*models.Claim, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "claim_number", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"campaign_id": campaignID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	return claims, nil
}

func (r *claimRepository) IncrementDownloadCount(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"download_count": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrClaimNotFound
	}

	return nil
}

func (r *claimRepository) ListStaleByStatus(ctx context.Context, status models.ClaimStatus, before time.Time, limit int) ([]*models.Claim, error) {
	filter := bson.M{
		"status":     status,
		"created_at": bson.M{"$lt": before},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []*models.Claim
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode claims: %w", err)
	}

	return claims, nil
}
