package app

import (
	"os"
	"time"

	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/session"
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func sessionTTL() time.Duration {
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if ttl, err := time.ParseDuration(raw); err == nil {
			return ttl
		}
	}
	return 24 * time.Hour
}

// BuildApp connects the infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	sessions := session.NewStore(redisClient, sessionTTL())

	return registerModules(router, sqlDB, gormDB, redisClient, sessions, zap.L())
}
