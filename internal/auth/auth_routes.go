package auth

import (
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, sessions *session.Store) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", middleware.RateLimitByIP(0.1, 2), handler.Register)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		auth.POST("/logout", middleware.SessionAuth(sessions), handler.Logout)
		auth.GET("/me", middleware.SessionAuth(sessions), middleware.RateLimitByOwner(2, 5), handler.Me)
	}
}
