package handlers

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"lazymint/internal/middleware"
	"lazymint/internal/services"
	"lazymint/internal/utils"
)

type AssetHandler struct {
	assetService services.AssetService
}

func NewAssetHandler(assetService services.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// GenerateQRCode generates and stores the campaign's shareable QR code
func (h *AssetHandler) GenerateQRCode(c *gin.Context) {
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

	result, err := h.assetService.GenerateCampaignQR(c.Request.Context(), campaignID, callerUID)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "QR code generated", result)
}

// UploadLogo replaces the campaign logo with an uploaded image
func (h *AssetHandler) UploadLogo(c *gin.Context) {
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

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		utils.ValidationErrorResponse(c, "Logo file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.ValidationErrorResponse(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")

	logoURL, err := h.assetService.UploadCampaignLogo(c.Request.Context(), campaignID, callerUID, file, fileHeader.Size, contentType)
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Logo uploaded successfully", gin.H{
		"logo_url": logoURL,
	})
}
