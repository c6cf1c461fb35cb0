package validators

import (
	"lazymint/internal/apperrors"
	"lazymint/internal/models"
)

func ValidateUserCreate(req *models.UserCreateRequest) *apperrors.Error {
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	return nil
}

func ValidateUserUpdate(req *models.UserUpdateRequest) *apperrors.Error {
	if req.IsEmpty() {
		return apperrors.Validation("No valid fields to update")
	}
	if errs := ValidateStruct(req); len(errs) > 0 {
		return apperrors.Validation(errs.Error())
	}
	return nil
}
