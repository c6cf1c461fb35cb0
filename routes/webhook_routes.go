package routes

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/handlers"
)

// SetupWebhookRoutes sets up billing provider webhook routes. These are
// unauthenticated; the payload signature is verified instead.
func SetupWebhookRoutes(r *gin.RouterGroup, webhookHandler *handlers.WebhookHandler) {
	webhooks := r.Group("/webhooks")
	{
		webhooks.POST("/stripe", webhookHandler.HandleStripeWebhook)
	}
}
