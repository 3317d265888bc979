package department

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc, h *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	can := func(action string) gin.HandlerFunc {
		return middleware.RBACAuthorize(rbacService, "department", action)
	}
	writeLimit := middleware.RateLimitByUser(0.5, 2)

	g := r.Group("/departments", authn, middleware.ContextLogger(logger))
	g.GET("", can("read"), h.GetAll)
	g.GET("/:id", can("read"), h.GetByID)
	g.POST("", writeLimit, can("create"), h.Create)
	g.PUT("/:id", writeLimit, can("update"), h.Update)
	g.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), can("delete"), h.Deactivate)
}
