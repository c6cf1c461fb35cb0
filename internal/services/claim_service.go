package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
	"lazymint/internal/utils"
	"lazymint/internal/validators"
	"lazymint/pkg/database"
	"lazymint/pkg/logger"
	"lazymint/pkg/mailer"
	"lazymint/pkg/storage"
)

// ClaimService is the claim admission and verification workflow. All
// cross-request coordination is pushed into store transactions; the
// service itself holds no durable state.
type ClaimService interface {
	SubmitClaim(ctx context.Context, request *models.ClaimRequest) (*models.ClaimSubmissionResult, error)
	VerifyClaim(ctx context.Context, request *models.ClaimVerificationRequest) (*models.ClaimVerificationResult, error)
	GetClaimStatus(ctx context.Context, claimID primitive.ObjectID) (*models.ClaimStatusView, error)
	ListCampaignClaims(ctx context.Context, campaignID primitive.ObjectID, callerUID string) ([]*models.ClaimListEntry, string, error)
	DownloadTicket(ctx context.Context, claimID primitive.ObjectID) (string, error)

	// AttachTicket renders and attaches the ticket for a verified claim.
	// Idempotent: completed claims return their existing URL.
	AttachTicket(ctx context.Context, claimID primitive.ObjectID) (string, error)

	// ExpireStaleClaims transitions pending claims past the token window
	// to expired and releases their campaign slots.
	ExpireStaleClaims(ctx context.Context) (int, error)

	// RecoverUnattachedTickets re-drives ticket attachment for claims
	// stuck in verified after a crash between verify and attach.
	RecoverUnattachedTickets(ctx context.Context) (int, error)
}

type ClaimServiceConfig struct {
	TokenTTL         time.Duration
	TicketRetryAfter time.Duration
	FrontendURL      string
	VerificationPath string
}

type claimService struct {
	campaignRepo interfaces.CampaignRepository
	claimRepo    interfaces.ClaimRepository
	tx           database.TxRunner
	renderer     TicketRenderer
	storage      storage.Provider
	mailer       mailer.Mailer
	config       *ClaimServiceConfig
	logger       *logger.Logger
	now          func() time.Time
}

func NewClaimService(
	campaignRepo interfaces.CampaignRepository,
	claimRepo interfaces.ClaimRepository,
	tx database.TxRunner,
	renderer TicketRenderer,
	storageProvider storage.Provider,
	mailSender mailer.Mailer,
	config *ClaimServiceConfig,
	log *logger.Logger,
) ClaimService {
	if config.TokenTTL == 0 {
		config.TokenTTL = utils.VerificationTokenTTL
	}
	return &claimService{
		campaignRepo: campaignRepo,
		claimRepo:    claimRepo,
		tx:           tx,
		renderer:     renderer,
		storage:      storageProvider,
		mailer:       mailSender,
		config:       config,
		logger:       log,
		now:          time.Now,
	}
}

func (s *claimService) SubmitClaim(ctx context.Context, request *models.ClaimRequest) (*models.ClaimSubmissionResult, error) {
	// Normalize before validating so padded or mixed-case addresses pass
	// the format check and dedupe against their canonical form.
	request.Email = utils.NormalizeEmail(request.Email)
	if err := validators.ValidateClaimRequest(request); err != nil {
		return nil, err
	}

	campaignID, err := primitive.ObjectIDFromHex(request.CampaignID)
	if err != nil {
		return nil, apperrors.Validation("Invalid campaign ID")
	}
	email := request.Email

	var claim *models.Claim
	var campaign *models.Campaign

	// Capacity, uniqueness, claim creation, and the counter increment
	// commit as one atomic unit. Two racing submissions for the same
	// slot or the same email cannot both succeed.
	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.campaignRepo.GetByID(txCtx, campaignID)
		if err != nil {
			return err
		}

		if c.Status != models.CampaignStatusActive {
			return apperrors.ErrCampaignNotActive
		}
		if !c.HasCapacity() {
			return apperrors.ErrMaxClaimsReached
		}

		existing, err := s.claimRepo.FindActiveByEmail(txCtx, campaignID, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.ErrAlreadyClaimed
		}

		token, err := utils.GenerateVerificationToken()
		if err != nil {
			return fmt.Errorf("failed to generate verification token: %w", err)
		}

		claim = &models.Claim{
			CampaignID:        campaignID,
			CreatorID:         c.CreatorID,
			ClaimNumber:       c.CurrentClaims + 1,
			Email:             email,
			Status:            models.ClaimStatusPending,
			VerificationToken: token,
		}

		if err := s.claimRepo.Create(txCtx, claim); err != nil {
			return err
		}
		if err := s.campaignRepo.IncrementClaims(txCtx, campaignID); err != nil {
			return err
		}

		campaign = c
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return nil, apperrors.ErrTxConflict
		}
		return nil, txErr
	}

	// Email dispatch is best-effort: a failure never rolls back the claim.
	s.sendVerificationEmail(ctx, claim, campaign)

	return &models.ClaimSubmissionResult{
		ClaimID:       claim.ID.Hex(),
		ClaimNumber:   claim.ClaimNumber,
		CampaignTitle: campaign.Title,
	}, nil
}

func (s *claimService) VerifyClaim(ctx context.Context, request *models.ClaimVerificationRequest) (*models.ClaimVerificationResult, error) {
	if err := validators.ValidateClaimVerification(request); err != nil {
		return nil, err
	}

	claimID, err := primitive.ObjectIDFromHex(request.ClaimID)
	if err != nil {
		return nil, apperrors.Validation("Invalid claim ID")
	}

	var claim *models.Claim

	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		cl, err := s.claimRepo.GetByID(txCtx, claimID)
		if err != nil {
			return err
		}

		// Consumed tokens are deleted, so the status check has to come
		// before token comparison to report re-verification correctly.
		if cl.Status == models.ClaimStatusVerified || cl.Status == models.ClaimStatusCompleted {
			return apperrors.ErrAlreadyVerified
		}
		if cl.Status == models.ClaimStatusExpired {
			return apperrors.ErrTokenExpired
		}

		if !utils.TokensEqual(cl.VerificationToken, request.VerificationToken) {
			return apperrors.ErrInvalidToken
		}

		if s.now().After(cl.CreatedAt.Add(s.config.TokenTTL)) {
			return apperrors.ErrTokenExpired
		}

		verifiedAt := s.now()
		updates := map[string]interface{}{
			"status":             models.ClaimStatusVerified,
			"verified_at":        verifiedAt,
			"verification_token": nil,
		}
		if err := s.claimRepo.Update(txCtx, claimID, updates); err != nil {
			return err
		}

		cl.Status = models.ClaimStatusVerified
		cl.VerifiedAt = &verifiedAt
		cl.VerificationToken = ""
		claim = cl
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return nil, apperrors.ErrTxConflict
		}
		return nil, txErr
	}

	result := &models.ClaimVerificationResult{
		ClaimID:     claim.ID.Hex(),
		ClaimNumber: claim.ClaimNumber,
		Status:      models.ClaimStatusVerified,
	}

	// Ticket generation talks to external services, so it runs after the
	// commit. A failure here leaves the claim verified without a ticket;
	// the sweeper re-drives attachment until it succeeds.
	ticketURL, err := s.AttachTicket(ctx, claimID)
	if err != nil {
		s.logger.WithClaimID(claimID).WithError(err).Error("ticket attachment failed after verification")
		return result, nil
	}

	result.TicketURL = ticketURL
	result.Status = models.ClaimStatusCompleted
	return result, nil
}

func (s *claimService) AttachTicket(ctx context.Context, claimID primitive.ObjectID) (string, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return "", err
	}

	if claim.Status == models.ClaimStatusCompleted && claim.TicketURL != "" {
		return claim.TicketURL, nil
	}
	if claim.Status != models.ClaimStatusVerified {
		return "", apperrors.ErrClaimNotCompleted
	}

	campaign, err := s.campaignRepo.GetByID(ctx, claim.CampaignID)
	if err != nil {
		return "", err
	}

	ticketPNG, err := s.renderer.RenderTicket(ctx, campaign, claim)
	if err != nil {
		return "", fmt.Errorf("failed to render ticket: %w", err)
	}

	key := fmt.Sprintf("tickets/%s/claim-%s-ticket.png", campaign.ID.Hex(), claim.ID.Hex())
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(ticketPNG),
		ContentType: "image/png",
		Size:        int64(len(ticketPNG)),
		Metadata: map[string]string{
			"campaign_id":  campaign.ID.Hex(),
			"claim_id":     claim.ID.Hex(),
			"claim_number": fmt.Sprintf("%d", claim.ClaimNumber),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload ticket: %w", err)
	}

	updates := map[string]interface{}{
		"ticket_url": uploaded.URL,
		"status":     models.ClaimStatusCompleted,
	}
	if err := s.claimRepo.Update(ctx, claimID, updates); err != nil {
		return "", err
	}

	s.logger.WithClaimID(claimID).WithField("ticket_url", uploaded.URL).Info("ticket generated")

	return uploaded.URL, nil
}

func (s *claimService) GetClaimStatus(ctx context.Context, claimID primitive.ObjectID) (*models.ClaimStatusView, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	return claim.StatusView(), nil
}

func (s *claimService) ListCampaignClaims(ctx context.Context, campaignID primitive.ObjectID, callerUID string) ([]*models.ClaimListEntry, string, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, "", err
	}
	if campaign.CreatorID != callerUID {
		return nil, "", apperrors.ErrPermissionDenied
	}

	claims, err := s.claimRepo.ListByCampaign(ctx, campaignID, utils.MaxClaimListSize)
	if err != nil {
		return nil, "", err
	}

	entries := make([]*models.ClaimListEntry, 0, len(claims))
	for _, claim := range claims {
		entries = append(entries, claim.ListEntry())
	}

	return entries, campaign.Title, nil
}

func (s *claimService) DownloadTicket(ctx context.Context, claimID primitive.ObjectID) (string, error) {
	var ticketURL string

	txErr := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		claim, err := s.claimRepo.GetByID(txCtx, claimID)
		if err != nil {
			return err
		}

		if claim.Status != models.ClaimStatusCompleted {
			return apperrors.ErrClaimNotCompleted
		}
		if claim.TicketURL == "" {
			return apperrors.ErrTicketUnavailable
		}

		if err := s.claimRepo.IncrementDownloadCount(txCtx, claimID); err != nil {
			return err
		}

		ticketURL = claim.TicketURL
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, database.ErrTxConflict) {
			return "", apperrors.ErrTxConflict
		}
		return "", txErr
	}

	return ticketURL, nil
}

func (s *claimService) ExpireStaleClaims(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.config.TokenTTL)

	stale, err := s.claimRepo.ListStaleByStatus(ctx, models.ClaimStatusPending, cutoff, utils.MaxClaimListSize)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, candidate := range stale {
		claimID := candidate.ID
		err := s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
			claim, err := s.claimRepo.GetByID(txCtx, claimID)
			if err != nil {
				return err
			}
			// Re-check under the transaction: the claim may have been
			// verified since the listing.
			if claim.Status != models.ClaimStatusPending || !claim.CreatedAt.Before(cutoff) {
				return nil
			}

			updates := map[string]interface{}{
				"status":             models.ClaimStatusExpired,
				"verification_token": nil,
			}
			if err := s.claimRepo.Update(txCtx, claimID, updates); err != nil {
				return err
			}

			// The abandoned slot goes back to the campaign.
			if err := s.campaignRepo.DecrementClaims(txCtx, claim.CampaignID); err != nil {
				return err
			}

			expired++
			return nil
		})
		if err != nil {
			s.logger.WithClaimID(claimID).WithError(err).Warn("failed to expire stale claim")
		}
	}

	return expired, nil
}

func (s *claimService) RecoverUnattachedTickets(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.config.TicketRetryAfter)

	stuck, err := s.claimRepo.ListStaleByStatus(ctx, models.ClaimStatusVerified, cutoff, utils.MaxClaimListSize)
	if err != nil {
		return 0, err
	}

	recovered := 0
	for _, claim := range stuck {
		if _, err := s.AttachTicket(ctx, claim.ID); err != nil {
			s.logger.WithClaimID(claim.ID).WithError(err).Warn("ticket recovery attempt failed")
			continue
		}
		recovered++
	}

	return recovered, nil
}

func (s *claimService) sendVerificationEmail(ctx context.Context, claim *models.Claim, campaign *models.Campaign) {
	if s.mailer == nil {
		return
	}

	verificationURL := fmt.Sprintf("%s%s?claimId=%s&token=%s",
		s.config.FrontendURL, s.config.VerificationPath, claim.ID.Hex(), claim.VerificationToken)

	content, err := mailer.VerificationEmail(campaign.Title, campaign.Description, claim.ClaimNumber, verificationURL)
	if err != nil {
		s.logger.WithClaimID(claim.ID).WithError(err).Warn("failed to build verification email")
		return
	}

	if err := s.mailer.Send(ctx, claim.Email, content.Subject, content.HTML, content.Text); err != nil {
		s.logger.WithClaimID(claim.ID).
			WithField("email", utils.MaskEmail(claim.Email)).
			WithError(err).
			Warn("verification email dispatch failed")
	}
}
