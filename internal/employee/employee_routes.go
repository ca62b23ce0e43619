package employee

import (
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	sessions *session.Store,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.SessionAuth(sessions))
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitByOwner(3, 10),
			handler.GetAll,
		)

		employees.GET("/options",
			middleware.RateLimitByOwner(5, 20), // Limit sedikit lebih longgar karena ringan
			handler.GetOptions,
		)

		employees.GET("/:id",
			middleware.RateLimitByOwner(3, 10),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByOwner(0.5, 2),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByOwner(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByOwner(0.2, 1),
			handler.Delete,
		)
	}
}
