package validators

import (
	"github.com/go-playground/validator/v10"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
)

func validateCampaignStatus(fl validator.FieldLevel) bool {
	return models.CampaignStatus(fl.Field().String()).Valid()
}

// ValidateCampaignCreate checks a campaign creation payload.
func ValidateCampaignCreate(req *models.CampaignCreateRequest) *apperrors.Error {
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	return nil
}

// ValidateCampaignUpdate checks a partial campaign update.
func ValidateCampaignUpdate(req *models.CampaignUpdateRequest) *apperrors.Error {
	if req.IsEmpty() {
		return apperrors.Validation("No valid fields to update")
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	if req.Status != nil && !req.Status.Valid() {
		return apperrors.Validation("Invalid campaign status")
	}
	return nil
}
