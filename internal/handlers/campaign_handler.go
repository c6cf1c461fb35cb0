package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/middleware"
	"lazymint/internal/models"
	"lazymint/internal/services"
	"lazymint/internal/utils"
)

type CampaignHandler struct {
	campaignService services.CampaignService
}

func NewCampaignHandler(campaignService services.CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
	}
}

// CreateCampaign creates a new campaign for the authenticated creator
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var request models.CampaignCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	callerUID := middleware.CallerUID(c)
	if callerUID == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), callerUID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Campaign created successfully", campaign)
}

// GetCampaign retrieves a single campaign
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ValidationErrorResponse(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), campaignID, middleware.CallerUID(c))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign retrieved", campaign)
}

// UpdateCampaign applies a partial update, creator only
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ValidationErrorResponse(c, "Invalid campaign ID")
		return
	}

	var request models.CampaignUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	callerUID := middleware.CallerUID(c)
	if callerUID == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Request.Context(), campaignID, callerUID, &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign updated successfully", campaign)
}

// ArchiveCampaign soft-deletes a campaign, creator only
func (h *CampaignHandler) ArchiveCampaign(c *gin.Context) {
	campaignID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ValidationErrorResponse(c, "Invalid campaign ID")
		return
	}

	callerUID := middleware.CallerUID(c)
	if callerUID == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	if err := h.campaignService.ArchiveCampaign(c.Request.Context(), campaignID, callerUID); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Campaign archived", nil)
}

// ListMyCampaigns lists the authenticated creator's campaigns
func (h *CampaignHandler) ListMyCampaigns(c *gin.Context) {
	callerUID := middleware.CallerUID(c)
	if callerUID == "" {
		utils.UnauthorizedResponse(c)
		return
	}

	campaigns, err := h.campaignService.ListUserCampaigns(c.Request.Context(), callerUID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Campaigns retrieved", campaigns, &utils.Meta{Count: len(campaigns)})
}

// ListPublicCampaigns lists active public campaigns for discovery
func (h *CampaignHandler) ListPublicCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.ListPublicCampaigns(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Public campaigns retrieved", campaigns, &utils.Meta{Count: len(campaigns)})
}
