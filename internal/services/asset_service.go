package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
	"lazymint/internal/repositories/interfaces"
	"lazymint/internal/utils"
	"lazymint/pkg/logger"
	"lazymint/pkg/storage"
)

// AssetService manages campaign artwork: the shareable claim QR code and
// the campaign logo used on tickets.
type AssetService interface {
	GenerateCampaignQR(ctx context.Context, campaignID primitive.ObjectID, callerUID string) (*models.CampaignQRResult, error)
	UploadCampaignLogo(ctx context.Context, campaignID primitive.ObjectID, callerUID string, file io.Reader, size int64, contentType string) (string, error)
}

type assetService struct {
	campaignRepo interfaces.CampaignRepository
	storage      storage.Provider
	frontendURL  string
	logger       *logger.Logger
}

func NewAssetService(
	campaignRepo interfaces.CampaignRepository,
	storageProvider storage.Provider,
	frontendURL string,
	log *logger.Logger,
) AssetService {
	return &assetService{
		campaignRepo: campaignRepo,
		storage:      storageProvider,
		frontendURL:  frontendURL,
		logger:       log,
	}
}

func (s *assetService) GenerateCampaignQR(ctx context.Context, campaignID primitive.ObjectID, callerUID string) (*models.CampaignQRResult, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if campaign.CreatorID != callerUID {
		return nil, apperrors.ErrPermissionDenied
	}

	claimURL := fmt.Sprintf("%s/claim/%s", s.frontendURL, campaignID.Hex())

	payload, err := json.Marshal(map[string]string{
		"type":       "campaign",
		"campaignId": campaignID.Hex(),
		"title":      campaign.Title,
		"claimUrl":   claimURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(payload), qrcode.Medium, utils.CampaignQRSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}

	key := fmt.Sprintf("qrcodes/%s/campaign-qr.png", campaignID.Hex())
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      bytes.NewReader(qrPNG),
		ContentType: "image/png",
		Size:        int64(len(qrPNG)),
		Metadata:    map[string]string{"campaign_id": campaignID.Hex()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload QR code: %w", err)
	}

	updates := map[string]interface{}{"qr_code_url": uploaded.URL}
	if err := s.campaignRepo.Update(ctx, campaignID, updates); err != nil {
		return nil, err
	}

	s.logger.WithCampaignID(campaignID).Info("campaign QR code generated")

	return &models.CampaignQRResult{
		QRCodeURL: uploaded.URL,
		ClaimURL:  claimURL,
	}, nil
}

func (s *assetService) UploadCampaignLogo(ctx context.Context, campaignID primitive.ObjectID, callerUID string, file io.Reader, size int64, contentType string) (string, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return "", err
	}
	if campaign.CreatorID != callerUID {
		return "", apperrors.ErrPermissionDenied
	}

	if size > utils.MaxLogoSize {
		return "", apperrors.Validation("Logo file exceeds the 5MB limit")
	}
	switch contentType {
	case "image/png", "image/jpeg", "image/gif":
	default:
		return "", apperrors.Validation("Logo must be a PNG, JPEG, or GIF image")
	}

	original, _, err := image.Decode(io.LimitReader(file, utils.MaxLogoSize+1))
	if err != nil {
		return "", apperrors.Validation("Uploaded file is not a valid image")
	}

	scaled := resize.Thumbnail(utils.LogoMaxWidth, utils.LogoMaxHeight, original, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode logo: %w", err)
	}

	key := fmt.Sprintf("logos/%s/%s-logo.jpg", callerUID, campaignID.Hex())
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      &buf,
		ContentType: "image/jpeg",
		Size:        int64(buf.Len()),
		Metadata:    map[string]string{"campaign_id": campaignID.Hex()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}

	updates := map[string]interface{}{"logo_url": uploaded.URL}
	if err := s.campaignRepo.Update(ctx, campaignID, updates); err != nil {
		return "", err
	}

	s.logger.WithCampaignID(campaignID).Info("campaign logo updated")

	return uploaded.URL, nil
}
