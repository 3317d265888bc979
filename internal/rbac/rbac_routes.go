package rbac

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc, handler *Handler, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(authn)
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/permissions", middleware.RateLimitByUser(2, 5), handler.MyPermissions)
	}
}
