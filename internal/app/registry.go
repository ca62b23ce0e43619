package app

import (
	"database/sql"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/auth"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/employee"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/messaging/kafka"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/middleware"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	sessions *session.Store,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	authService := auth.NewService(authRepo, sessions, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, sessions, logger)
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, sessions)
		employee.RegisterRoutes(api, employeeHandler, sessions, rdb, logger)
	}

	return nil
}
