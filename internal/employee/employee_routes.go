package employee

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the admin-facing employee directory. Every route needs
// an "employee" permission from the casbin policy; writes are throttled harder
// than reads.
func RegisterRoutes(
	r *gin.RouterGroup,
	authn gin.HandlerFunc,
	handler *Handler,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "employee", action)
	}
	readLimit := middleware.RateLimitByUser(3, 10)

	employees := r.Group("/employees", authn, middleware.ContextLogger(logger))

	employees.GET("", readLimit, can("read"), handler.GetAll)
	employees.GET("/options", middleware.RateLimitByUser(5, 20), can("read"), handler.GetOptions)
	employees.GET("/:id", readLimit, can("read"), handler.GetByID)

	employees.POST("", middleware.RateLimitByUser(0.2, 2), can("create"), handler.Create)
	employees.PUT("/:id", middleware.RateLimitByUser(0.5, 2), can("update"), handler.Update)
	// Deactivates; rows are never hard-deleted because payroll and attendance reference them.
	employees.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), can("delete"), handler.Deactivate)
}
