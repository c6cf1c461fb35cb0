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
	"lazymint/internal/utils"
)

const publicCampaignsCacheTTL = 30 * time.Second

type campaignRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewCampaignRepository(db *mongo.Database, cache CacheService) interfaces.CampaignRepository {
	return &campaignRepository{
		collection: db.Collection("campaigns"),
		cache:      cache,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	campaign.ID = primitive.NewObjectID()
	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, campaign)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	r.invalidatePublicCache(ctx)

	return nil
}

// GetByID always reads from the store. Campaign reads feed transactional
// capacity checks and claim numbering, so they must never be stale.
func (r *campaignRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&campaign)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return &campaign, nil
}

func (r *campaignRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrCampaignNotFound
	}

	r.invalidatePublicCache(ctx)

	return nil
}

func (r *campaignRepository) IncrementClaims(ctx context.Context, id primitive.ObjectID) error {
	// The $expr guard re-checks capacity at write time, so two admission
	// transactions racing on the same campaign cannot both pass.
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":   id,
			"$expr": bson.M{"$lt": bson.A{"$current_claims", "$max_claims"}},
		},
		bson.M{
			"$inc": bson.M{"current_claims": 1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment claim count: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrMaxClaimsReached
	}

	return nil
}

func (r *campaignRepository) DecrementClaims(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":   id,
			"$expr": bson.M{"$gt": bson.A{"$current_claims", 0}},
		},
		bson.M{
			"$inc": bson.M{"current_claims": -1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to decrement claim count: %w", err)
	}
	_ = result // already at zero is not an error

	return nil
}

func (r *campaignRepository) ListByCreator(ctx context.Context, creatorID string, limit int) ([]*models.Campaign, error) {
	filter := bson.M{
		"creator_id": creatorID,
		"status":     bson.M{"$ne": models.CampaignStatusArchived},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) ListPublicActive(ctx context.Context, limit int) ([]*models.Campaign, error) {
	cacheKey := fmt.Sprintf("campaigns_public_%d", limit)
	if r.cache != nil {
		var cached []*models.Campaign
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	filter := bson.M{
		"is_public": true,
		"status":    models.CampaignStatusActive,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list public campaigns: %w", err)
	}
	defer cursor.Close(ctx)

	var campaigns []*models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("failed to decode campaigns: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, campaigns, publicCampaignsCacheTTL)
	}

	return campaigns, nil
}

func (r *campaignRepository) invalidatePublicCache(ctx context.Context) {
	if r.cache != nil {
		r.cache.Delete(ctx, fmt.Sprintf("campaigns_public_%d", utils.MaxPublicCampaignListSize))
	}
}
