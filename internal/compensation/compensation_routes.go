package compensation

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	authn gin.HandlerFunc,
	h *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	comp := r.Group("/compensation")
	comp.Use(authn)
	comp.Use(middleware.ContextLogger(logger))
	{
		comp.GET("/policy", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "compensation", "read"), h.GetPolicy)
		comp.PUT("/policy", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "compensation", "update"), h.UpdatePolicy)

		salaries := comp.Group("/salaries")
		salaries.Use(middleware.RBACAuthorize(rbacService, "compensation", "update"))
		salaries.Use(middleware.Idempotency(rdb))
		{
			salaries.POST("/assign", middleware.RateLimitByUser(0.2, 2), h.AssignSalaries)
			salaries.POST("/revise", middleware.RateLimitByUser(0.2, 2), h.ReviseSalaries)
		}
	}
}
