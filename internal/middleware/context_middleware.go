package middleware

import (
	"github.com/Shivkumar-Raghuwanshi/employee-hub/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger plus request id and owner id
// to the standard context so the service and repo layers never reach back
// into gin for identity.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		// Owner sudah diverifikasi oleh SessionAuth sebelumnya
		oid := c.GetString("owner_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("owner_id", oid),
		)

		// Propagasi ke Standard Context
		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithOwnerID(ctx, oid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
