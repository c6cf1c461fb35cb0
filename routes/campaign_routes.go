package routes

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/handlers"
	"lazymint/internal/middleware"
	"lazymint/pkg/auth"
)

// SetupCampaignRoutes sets up campaign lifecycle and asset routes
func SetupCampaignRoutes(
	r *gin.RouterGroup,
	verifier auth.Verifier,
	campaignHandler *handlers.CampaignHandler,
	assetHandler *handlers.AssetHandler,
	claimHandler *handlers.ClaimHandler,
) {
	campaigns := r.Group("/campaigns")
	{
		// Discovery is public; single-campaign reads depend on who asks
		campaigns.GET("/public", campaignHandler.ListPublicCampaigns)
		campaigns.GET("/:id", middleware.OptionalAuth(verifier), campaignHandler.GetCampaign)

		// Everything else belongs to the campaign creator
		protected := campaigns.Group("")
		protected.Use(middleware.AuthRequired(verifier))
		{
			protected.POST("", campaignHandler.CreateCampaign)
			protected.GET("/my", campaignHandler.ListMyCampaigns)
			protected.PUT("/:id", campaignHandler.UpdateCampaign)
			protected.DELETE("/:id", campaignHandler.ArchiveCampaign)
			protected.POST("/:id/qr", assetHandler.GenerateQRCode)
			protected.POST("/:id/logo", assetHandler.UploadLogo)
			protected.GET("/:id/claims", claimHandler.ListCampaignClaims)
		}
	}
}
