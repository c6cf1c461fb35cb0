package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/pkg/logger"
)

func newCampaignTestService(t *testing.T) (CampaignService, *memCampaignRepo, *memUserRepo) {
	t.Helper()

	campaigns := newMemCampaignRepo()
	users := newMemUserRepo()
	require.NoError(t, users.Create(context.Background(), &models.User{
		UID:         "creator-1",
		Email:       "creator@example.com",
		DisplayName: "Creator One",
	}))

	service := NewCampaignService(campaigns, users, &fakeTxRunner{}, logger.NewNopLogger())
	return service, campaigns, users
}

func validCreateRequest() *models.CampaignCreateRequest {
	return &models.CampaignCreateRequest{
		Title:       "Launch Party",
		Description: "First hundred fans get a ticket",
		MaxClaims:   100,
		IsPublic:    true,
	}
}

func TestCreateCampaign(t *testing.T) {
	t.Run("creates draft and counts it", func(t *testing.T) {
		service, _, users := newCampaignTestService(t)

		campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
		require.NoError(t, err)

		assert.Equal(t, models.CampaignStatusDraft, campaign.Status)
		assert.Equal(t, "creator-1", campaign.CreatorID)
		assert.Equal(t, 0, campaign.CurrentClaims)

		user, err := users.GetByUID(context.Background(), "creator-1")
		require.NoError(t, err)
		assert.Equal(t, 1, user.CampaignCount)
	})

	t.Run("rejects short title", func(t *testing.T) {
		service, _, _ := newCampaignTestService(t)

		request := validCreateRequest()
		request.Title = "ab"

		_, err := service.CreateCampaign(context.Background(), "creator-1", request)
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.FromError(err).Kind)
	})
}

func TestGetCampaign(t *testing.T) {
	service, _, _ := newCampaignTestService(t)

	request := validCreateRequest()
	request.IsPublic = false
	campaign, err := service.CreateCampaign(context.Background(), "creator-1", request)
	require.NoError(t, err)

	t.Run("creator sees private campaign", func(t *testing.T) {
		got, err := service.GetCampaign(context.Background(), campaign.ID, "creator-1")
		require.NoError(t, err)
		assert.Equal(t, campaign.ID, got.ID)
	})

	t.Run("private campaign is hidden from others", func(t *testing.T) {
		_, err := service.GetCampaign(context.Background(), campaign.ID, "stranger")
		assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)

		_, err = service.GetCampaign(context.Background(), campaign.ID, "")
		assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)
	})
}

func TestUpdateCampaign(t *testing.T) {
	statusActive := models.CampaignStatusActive

	t.Run("applies partial update", func(t *testing.T) {
		service, _, _ := newCampaignTestService(t)
		campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
		require.NoError(t, err)

		newTitle := "Launch Party 2.0"
		updated, err := service.UpdateCampaign(context.Background(), campaign.ID, "creator-1", &models.CampaignUpdateRequest{
			Title:  &newTitle,
			Status: &statusActive,
		})
		require.NoError(t, err)

		assert.Equal(t, newTitle, updated.Title)
		assert.Equal(t, models.CampaignStatusActive, updated.Status)
		assert.Equal(t, campaign.Description, updated.Description)
	})

	t.Run("only the creator may update", func(t *testing.T) {
		service, _, _ := newCampaignTestService(t)
		campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
		require.NoError(t, err)

		_, err = service.UpdateCampaign(context.Background(), campaign.ID, "stranger", &models.CampaignUpdateRequest{
			Status: &statusActive,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("claim limit cannot undercut issued claims", func(t *testing.T) {
		service, campaigns, _ := newCampaignTestService(t)
		campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			require.NoError(t, campaigns.IncrementClaims(context.Background(), campaign.ID))
		}

		lower := 3
		_, err = service.UpdateCampaign(context.Background(), campaign.ID, "creator-1", &models.CampaignUpdateRequest{
			MaxClaims: &lower,
		})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.FromError(err).Kind)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		service, _, _ := newCampaignTestService(t)
		campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
		require.NoError(t, err)

		_, err = service.UpdateCampaign(context.Background(), campaign.ID, "creator-1", &models.CampaignUpdateRequest{})
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.FromError(err).Kind)
	})
}

func TestArchiveCampaign(t *testing.T) {
	service, campaigns, users := newCampaignTestService(t)
	campaign, err := service.CreateCampaign(context.Background(), "creator-1", validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, service.ArchiveCampaign(context.Background(), campaign.ID, "creator-1"))

	archived, err := campaigns.GetByID(context.Background(), campaign.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CampaignStatusArchived, archived.Status)

	user, err := users.GetByUID(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, 0, user.CampaignCount)

	// Archiving twice neither fails nor double-decrements.
	require.NoError(t, service.ArchiveCampaign(context.Background(), campaign.ID, "creator-1"))
	user, err = users.GetByUID(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Equal(t, 0, user.CampaignCount)

	t.Run("unknown campaign", func(t *testing.T) {
		err := service.ArchiveCampaign(context.Background(), primitive.NewObjectID(), "creator-1")
		assert.ErrorIs(t, err, apperrors.ErrCampaignNotFound)
	})
}

func TestListCampaigns(t *testing.T) {
	service, _, _ := newCampaignTestService(t)

	public := validCreateRequest()
	campaign, err := service.CreateCampaign(context.Background(), "creator-1", public)
	require.NoError(t, err)

	statusActive := models.CampaignStatusActive
	_, err = service.UpdateCampaign(context.Background(), campaign.ID, "creator-1", &models.CampaignUpdateRequest{
		Status: &statusActive,
	})
	require.NoError(t, err)

	private := validCreateRequest()
	private.IsPublic = false
	_, err = service.CreateCampaign(context.Background(), "creator-1", private)
	require.NoError(t, err)

	mine, err := service.ListUserCampaigns(context.Background(), "creator-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	discoverable, err := service.ListPublicCampaigns(context.Background())
	require.NoError(t, err)
	assert.Len(t, discoverable, 1)
	assert.Equal(t, campaign.ID, discoverable[0].ID)
}
