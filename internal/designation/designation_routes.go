package designation

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	authn gin.HandlerFunc,
	h *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	designations := r.Group("/designations")
	designations.Use(authn)
	designations.Use(middleware.ContextLogger(logger))
	{
		designations.GET("", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "designation", "read"), h.GetAll)
		designations.POST("", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "designation", "create"), h.Create)
		designations.GET("/:id", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "designation", "read"), h.GetByID)
		designations.PUT("/:id", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "designation", "update"), h.Update)
		designations.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), middleware.RBACAuthorize(rbacService, "designation", "delete"), h.Deactivate)
	}
}
