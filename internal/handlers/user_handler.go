package handlers

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/apperrors"
	"lazymint/internal/middleware"
	"lazymint/internal/models"
	"lazymint/internal/services"
	"lazymint/internal/utils"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register creates a new creator account
func (h *UserHandler) Register(c *gin.Context) {
	var request models.UserCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", user)
}

// GetProfile returns the profile identified by the path uid
func (h *UserHandler) GetProfile(c *gin.Context) {
	uid, ok := h.authorizedUID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), uid)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

// UpdateProfile applies a partial update to the profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	uid, ok := h.authorizedUID(c)
	if !ok {
		return
	}

	var request models.UserUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), uid, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Profile updated successfully", user)
}

// DeleteAccount removes the account identified by the path uid
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	uid, ok := h.authorizedUID(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), uid); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Account deleted", nil)
}

// authorizedUID extracts the path uid and verifies the caller owns it.
// Profiles are private; there is no cross-user read.
func (h *UserHandler) authorizedUID(c *gin.Context) (string, bool) {
	callerUID := middleware.CallerUID(c)
	if callerUID == "" {
		utils.UnauthorizedResponse(c)
		return "", false
	}

	uid := c.Param("uid")
	if uid != callerUID {
		utils.AppErrorResponse(c, apperrors.ErrPermissionDenied)
		return "", false
	}
	return uid, true
}
