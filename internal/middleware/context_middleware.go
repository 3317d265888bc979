package middleware

import (
	"go-hrms/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger puts a request-scoped zap logger into the request context.
// Services pick it up through contextutil without touching gin. Must run after
// AuthMiddleware so the caller identity is known.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		rid := contextutil.GetRequestID(ctx)
		if rid == "" {
			if rid = c.GetHeader(RequestIDHeader); !validRequestID(rid) {
				rid = uuid.NewString()
			}
			c.Header(RequestIDHeader, rid)
			ctx = contextutil.WithRequestID(ctx, rid)
		}

		uid := c.GetString(ContextUserID)
		role := c.GetString(ContextRole)
		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("user_id", uid),
			zap.String("role", role),
		}
		if code := c.GetString(ContextEmployeeCode); code != "" {
			fields = append(fields, zap.String("employee_code", code))
		}

		ctx = contextutil.WithUserID(ctx, uid)
		ctx = contextutil.WithRole(ctx, role)
		ctx = contextutil.WithLogger(ctx, logger.With(fields...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
