package routes

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/handlers"
	"lazymint/internal/middleware"
	"lazymint/pkg/auth"
	"lazymint/pkg/logger"
)

// Handlers bundles everything the router needs. The webhook handler is
// nil when billing is disabled.
type Handlers struct {
	Campaign *handlers.CampaignHandler
	Claim    *handlers.ClaimHandler
	Asset    *handlers.AssetHandler
	User     *handlers.UserHandler
	Webhook  *handlers.WebhookHandler
	Health   *handlers.HealthHandler
}

// Setup builds the gin engine with global middleware and all API routes
// mounted under /api/v1.
func Setup(verifier auth.Verifier, h *Handlers, log *logger.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(allowedOrigins))

	v1 := router.Group("/api/v1")
	{
		SetupCampaignRoutes(v1, verifier, h.Campaign, h.Asset, h.Claim)
		SetupClaimRoutes(v1, h.Claim)
		SetupUserRoutes(v1, verifier, h.User)
		if h.Webhook != nil {
			SetupWebhookRoutes(v1, h.Webhook)
		}
	}

	router.GET("/health", h.Health.Health)

	return router
}
