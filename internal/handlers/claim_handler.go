package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/middleware"
	"lazymint/internal/models"
	"lazymint/internal/services"
	"lazymint/internal/utils"
)

type ClaimHandler struct {
	claimService services.ClaimService
}

func NewClaimHandler(claimService services.ClaimService) *ClaimHandler {
	return &ClaimHandler{
		claimService: claimService,
	}
}

// SubmitClaim admits a new email claim against a campaign
func (h *ClaimHandler) SubmitClaim(c *gin.Context) {
	var request models.ClaimRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.claimService.SubmitClaim(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Claim submitted, check your email to verify", result)
}

// VerifyClaim consumes a verification token and finalizes the claim
func (h *ClaimHandler) VerifyClaim(c *gin.Context) {
	var request models.ClaimVerificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.ValidationErrorResponse(c, "Invalid request: "+err.Error())
		return
	}

	result, err := h.claimService.VerifyClaim(c.Request.Context(), &request)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Claim verified successfully", result)
}

// GetClaimStatus returns the public projection of a claim
func (h *ClaimHandler) GetClaimStatus(c *gin.Context) {
	claimID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ValidationErrorResponse(c, "Invalid claim ID")
		return
	}

	status, err := h.claimService.GetClaimStatus(c.Request.Context(), claimID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Claim status retrieved", status)
}

// ListCampaignClaims returns all claims for a campaign, creator only
func (h *ClaimHandler) ListCampaignClaims(c *gin.Context) {
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

	claims, campaignTitle, err := h.claimService.ListCampaignClaims(c.Request.Context(), campaignID, callerUID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Claims retrieved", gin.H{
		"campaign_title": campaignTitle,
		"claims":         claims,
	}, &utils.Meta{Count: len(claims)})
}

// DownloadTicket counts the download and redirects to the stored ticket
func (h *ClaimHandler) DownloadTicket(c *gin.Context) {
	claimID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ValidationErrorResponse(c, "Invalid claim ID")
		return
	}

	ticketURL, err := h.claimService.DownloadTicket(c.Request.Context(), claimID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	c.Redirect(http.StatusFound, ticketURL)
}
