package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
)

const userCacheTTL = 15 * time.Minute

type userRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewUserRepository(db *mongo.Database, cache CacheService) interfaces.UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
		cache:      cache,
	}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.cacheUser(ctx, user)

	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	if r.cache != nil {
		var user models.User
		if err := r.cache.Get(ctx, userCacheKey(uid), &user); err == nil {
			return &user, nil
		}
	}

	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	r.cacheUser(ctx, &user)

	return &user, nil
}

// GetByStripeCustomerID resolves a user from a billing webhook payload.
// Always reads the store; webhook handling must not act on stale data.
func (r *userRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"stripe_customer_id": customerID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by customer id: %w", err)
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, uid string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": uid},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	r.invalidateUserCache(ctx, uid)

	return nil
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrUserNotFound
	}

	r.invalidateUserCache(ctx, uid)

	return nil
}

func (r *userRepository) IncrementCampaignCount(ctx context.Context, uid string, delta int) error {
	filter := bson.M{"_id": uid}
	if delta < 0 {
		filter["campaign_count"] = bson.M{"$gt": 0}
	}

	_, err := r.collection.UpdateOne(
		ctx,
		filter,
		bson.M{
			"$inc": bson.M{"campaign_count": delta},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to adjust campaign count: %w", err)
	}

	r.invalidateUserCache(ctx, uid)

	return nil
}

func userCacheKey(uid string) string {
	return fmt.Sprintf("user_%s", uid)
}

func (r *userRepository) cacheUser(ctx context.Context, user *models.User) {
	if r.cache != nil {
		r.cache.Set(ctx, userCacheKey(user.UID), user, userCacheTTL)
	}
}

func (r *userRepository) invalidateUserCache(ctx context.Context, uid string) {
	if r.cache != nil {
		r.cache.Delete(ctx, userCacheKey(uid))
	}
}
