package validators

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/apperrors"
	"lazymint/internal/models"
)

// ValidateClaimRequest checks a claim submission payload before any
// transaction opens.
func ValidateClaimRequest(req *models.ClaimRequest) *apperrors.Error {
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	if _, err := primitive.ObjectIDFromHex(req.CampaignID); err != nil {
		return apperrors.Validation("Invalid campaign ID")
	}
	return nil
}

// ValidateClaimVerification checks a token verification payload.
func ValidateClaimVerification(req *models.ClaimVerificationRequest) *apperrors.Error {
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	if _, err := primitive.ObjectIDFromHex(req.ClaimID); err != nil {
		return apperrors.Validation("Invalid claim ID")
	}
	return nil
}
