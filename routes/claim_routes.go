package routes

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/handlers"
)

// SetupClaimRoutes sets up claim submission, verification, and ticket
// routes. All of these are public: claimants are identified by their
// claim id and, for verification, the emailed single-use token.
func SetupClaimRoutes(r *gin.RouterGroup, claimHandler *handlers.ClaimHandler) {
	claims := r.Group("/claims")
	{
		claims.POST("", claimHandler.SubmitClaim)
		claims.POST("/verify", claimHandler.VerifyClaim)
		claims.GET("/:id/status", claimHandler.GetClaimStatus)
		claims.GET("/:id/download", claimHandler.DownloadTicket)
	}
}
