package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"lazymint/internal/services"
	"lazymint/internal/utils"
)

const maxWebhookBodySize = 64 * 1024

type WebhookHandler struct {
	subscriptionService services.SubscriptionService
}

func NewWebhookHandler(subscriptionService services.SubscriptionService) *WebhookHandler {
	return &WebhookHandler{
		subscriptionService: subscriptionService,
	}
}

// HandleStripeWebhook verifies and applies billing provider events
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodySize))
	if err != nil {
		utils.ValidationErrorResponse(c, "Failed to read webhook payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")

	if err := h.subscriptionService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Webhook processed", nil)
}
