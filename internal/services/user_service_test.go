package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/pkg/auth"
	"lazymint/pkg/logger"
)

type fakeAuthManager struct {
	mu      sync.Mutex
	nextUID int
	byEmail map[string]string
	deleted []string
}

func newFakeAuthManager() *fakeAuthManager {
	return &fakeAuthManager{byEmail: make(map[string]string)}
}

func (f *fakeAuthManager) CreateUser(ctx context.Context, email, password, displayName string) (*auth.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.byEmail[email]; exists {
		return nil, auth.ErrEmailExists
	}
	f.nextUID++
	uid := "uid-" + string(rune('a'+f.nextUID-1))
	f.byEmail[email] = uid

	return &auth.Identity{UID: uid, Email: email}, nil
}

func (f *fakeAuthManager) UpdateUser(ctx context.Context, uid string, email, displayName string) error {
	return nil
}

func (f *fakeAuthManager) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, uid)
	return nil
}

func TestCreateUser(t *testing.T) {
	t.Run("creates account with free tier", func(t *testing.T) {
		users := newMemUserRepo()
		service := NewUserService(users, newFakeAuthManager(), nil, logger.NewNopLogger())

		user, err := service.CreateUser(context.Background(), &models.UserCreateRequest{
			Email:       "Creator@Example.com",
			Password:    "correct-horse",
			DisplayName: "Creator One",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, user.UID)
		assert.Equal(t, "creator@example.com", user.Email)
		assert.Equal(t, models.SubscriptionTierFree, user.SubscriptionTier)
		assert.Equal(t, models.SubscriptionStatusActive, user.SubscriptionStatus)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		users := newMemUserRepo()
		service := NewUserService(users, newFakeAuthManager(), nil, logger.NewNopLogger())

		request := &models.UserCreateRequest{
			Email:       "creator@example.com",
			Password:    "correct-horse",
			DisplayName: "Creator One",
		}
		_, err := service.CreateUser(context.Background(), request)
		require.NoError(t, err)

		_, err = service.CreateUser(context.Background(), request)
		assert.ErrorIs(t, err, apperrors.ErrEmailExists)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		users := newMemUserRepo()
		service := NewUserService(users, newFakeAuthManager(), nil, logger.NewNopLogger())

		_, err := service.CreateUser(context.Background(), &models.UserCreateRequest{
			Email:       "creator@example.com",
			Password:    "short",
			DisplayName: "Creator One",
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.FromError(err).Kind)
	})
}

func TestDeleteUser(t *testing.T) {
	users := newMemUserRepo()
	authManager := newFakeAuthManager()
	service := NewUserService(users, authManager, nil, logger.NewNopLogger())

	user, err := service.CreateUser(context.Background(), &models.UserCreateRequest{
		Email:       "creator@example.com",
		Password:    "correct-horse",
		DisplayName: "Creator One",
	})
	require.NoError(t, err)

	require.NoError(t, service.DeleteUser(context.Background(), user.UID))

	_, err = service.GetUser(context.Background(), user.UID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Contains(t, authManager.deleted, user.UID)
}

func TestUpdateUser(t *testing.T) {
	users := newMemUserRepo()
	service := NewUserService(users, newFakeAuthManager(), nil, logger.NewNopLogger())

	user, err := service.CreateUser(context.Background(), &models.UserCreateRequest{
		Email:       "creator@example.com",
		Password:    "correct-horse",
		DisplayName: "Creator One",
	})
	require.NoError(t, err)

	newName := "Creator Prime"
	updated, err := service.UpdateUser(context.Background(), user.UID, &models.UserUpdateRequest{
		DisplayName: &newName,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.DisplayName)
	assert.Equal(t, user.Email, updated.Email)

	_, err = service.UpdateUser(context.Background(), user.UID, &models.UserUpdateRequest{})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.FromError(err).Kind)
}
