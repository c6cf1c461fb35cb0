package routes

import (
	"github.com/gin-gonic/gin"

	"lazymint/internal/handlers"
	"lazymint/internal/middleware"
	"lazymint/pkg/auth"
)

// SetupUserRoutes sets up account registration and profile routes
func SetupUserRoutes(r *gin.RouterGroup, verifier auth.Verifier, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", userHandler.Register)

		protected := users.Group("")
		protected.Use(middleware.AuthRequired(verifier))
		{
			protected.GET("/:uid", userHandler.GetProfile)
			protected.PUT("/:uid", userHandler.UpdateProfile)
			protected.DELETE("/:uid", userHandler.DeleteAccount)
		}
	}
}
