package leave

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
	types := r.Group("/leave-types")
	types.Use(authn)
	types.Use(middleware.ContextLogger(logger))
	{
		types.GET("", middleware.RateLimitByUser(3, 10), h.ListTypes)
		types.POST("", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "leave_type", "create"), h.CreateType)
		types.PUT("/:id", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "leave_type", "update"), h.UpdateType)
		types.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), middleware.RBACAuthorize(rbacService, "leave_type", "delete"), h.DeactivateType)
	}

	leaves := r.Group("/leaves")
	leaves.Use(authn)
	leaves.Use(middleware.ContextLogger(logger))
	{
		leaves.GET("", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "leave", "read"), h.GetAll)
		leaves.POST("", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "leave", "create"), h.Apply)
		leaves.PATCH("/:id/status", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "leave", "approve"), h.Review)
		leaves.GET("/balances/:employee_id", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "leave", "read"), h.Balances)
	}
}

func RegisterSelfRoutes(me *gin.RouterGroup, h *Handler) {
	me.GET("/leaves", middleware.RateLimitByUser(3, 10), h.GetMine)
	me.POST("/leaves", middleware.RateLimitByUser(0.5, 2), h.ApplyMine)
}
