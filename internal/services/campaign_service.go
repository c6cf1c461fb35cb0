package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
	"lazymint/internal/utils"
	"lazymint/internal/validators"
	"lazymint/pkg/database"
	"lazymint/pkg/logger"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, creatorUID string, request *models.CampaignCreateRequest) (*models.Campaign, error)
	GetCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string, request *models.CampaignUpdateRequest) (*models.Campaign, error)
	ArchiveCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string) error
	ListUserCampaigns(ctx context.Context, creatorUID string) ([]*models.Campaign, error)
	ListPublicCampaigns(ctx context.Context) ([]*models.Campaign, error)
}

type campaignService struct {
	campaignRepo interfaces.CampaignRepository
	userRepo     interfaces.UserRepository
	tx           database.TxRunner
	logger       *logger.Logger
}

func NewCampaignService(
	campaignRepo interfaces.CampaignRepository,
	userRepo interfaces.UserRepository,
	tx database.TxRunner,
	log *logger.Logger,
) CampaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		userRepo:     userRepo,
		tx:           tx,
		logger:       log,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, creatorUID string, request *models.CampaignCreateRequest) (*models.Campaign, error) {
	if err := validators.ValidateCampaignCreate(request); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		CreatorID:           creatorUID,
		Title:               request.Title,
		Description:         request.Description,
		MaxClaims:           request.MaxClaims,
		IsPublic:            request.IsPublic,
		LogoURL:             request.LogoURL,
		TicketBackgroundURL: request.TicketBackgroundURL,
		Status:              models.CampaignStatusDraft,
	}

	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.campaignRepo.Create(txCtx, campaign); err != nil {
			return err
		}
		return s.userRepo.IncrementCampaignCount(txCtx, creatorUID, 1)
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return nil, apperrors.ErrTxConflict
		}
		return nil, txErr
	}

	s.logger.WithCampaignID(campaign.ID).WithUserID(creatorUID).Info("campaign created")

	return campaign, nil
}

func (s *campaignService) GetCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	// Private campaigns are indistinguishable from missing ones for
	// anyone but their creator.
	if !campaign.IsPublic && campaign.CreatorID != callerUID {
		return nil, apperrors.ErrCampaignNotFound
	}

	return campaign, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string, request *models.CampaignUpdateRequest) (*models.Campaign, error) {
	if err := validators.ValidateCampaignUpdate(request); err != nil {
		return nil, err
	}

	var updated *models.Campaign

	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		campaign, err := s.campaignRepo.GetByID(txCtx, campaignID)
		if err != nil {
			return err
		}
		if campaign.CreatorID != callerUID {
			return apperrors.ErrPermissionDenied
		}
		if campaign.Status == models.CampaignStatusArchived {
			return apperrors.New(apperrors.KindInvalidState, "CAMPAIGN_ARCHIVED", "Archived campaigns cannot be modified")
		}

		updates := map[string]interface{}{}
		if request.Title != nil {
			campaign.Title = *request.Title
			updates["title"] = *request.Title
		}
		if request.Description != nil {
			campaign.Description = *request.Description
			updates["description"] = *request.Description
		}
		if request.MaxClaims != nil {
			if *request.MaxClaims < campaign.CurrentClaims {
				return apperrors.Validation("Claim limit cannot be lower than claims already issued")
			}
			campaign.MaxClaims = *request.MaxClaims
			updates["max_claims"] = *request.MaxClaims
		}
		if request.IsPublic != nil {
			campaign.IsPublic = *request.IsPublic
			updates["is_public"] = *request.IsPublic
		}
		if request.Status != nil {
			campaign.Status = *request.Status
			updates["status"] = *request.Status
		}
		if request.LogoURL != nil {
			campaign.LogoURL = *request.LogoURL
			updates["logo_url"] = *request.LogoURL
		}
		if request.TicketBackgroundURL != nil {
			campaign.TicketBackgroundURL = *request.TicketBackgroundURL
			updates["ticket_background_url"] = *request.TicketBackgroundURL
		}

		if err := s.campaignRepo.Update(txCtx, campaignID, updates); err != nil {
			return err
		}

		updated = campaign
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return nil, apperrors.ErrTxConflict
		}
		return nil, txErr
	}

	return updated, nil
}

func (s *campaignService) ArchiveCampaign(ctx context.Context, campaignID primitive.ObjectID, callerUID string) error {
	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		campaign, err := s.campaignRepo.GetByID(txCtx, campaignID)
		if err != nil {
			return err
		}
		if campaign.CreatorID != callerUID {
			return apperrors.ErrPermissionDenied
		}
		if campaign.Status == models.CampaignStatusArchived {
			return nil
		}

		updates := map[string]interface{}{
			"status": models.CampaignStatusArchived,
		}
		if err := s.campaignRepo.Update(txCtx, campaignID, updates); err != nil {
			return err
		}
		return s.userRepo.IncrementCampaignCount(txCtx, callerUID, -1)
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return apperrors.ErrTxConflict
		}
		return txErr
	}

	s.logger.WithCampaignID(campaignID).WithUserID(callerUID).Info("campaign archived")

	return nil
}

func (s *campaignService) ListUserCampaigns(ctx context.Context, creatorUID string) ([]*models.Campaign, error) {
	return s.campaignRepo.ListByCreator(ctx, creatorUID, utils.MaxUserCampaignListSize)
}

func (s *campaignService) ListPublicCampaigns(ctx context.Context) ([]*models.Campaign, error) {
	return s.campaignRepo.ListPublicActive(ctx, utils.MaxPublicCampaignListSize)
}
