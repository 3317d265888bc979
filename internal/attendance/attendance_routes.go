package attendance

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
	kioskKey string,
	logger *zap.Logger,
) {
	// The kiosk has no user session, only the shared key.
	r.POST("/attendance/face",
		middleware.ContextLogger(logger),
		middleware.RateLimitByIP(2, 5),
		middleware.KioskKey(kioskKey),
		h.MarkByFace,
	)

	attendance := r.Group("/attendance")
	attendance.Use(authn)
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "attendance", "read"), h.GetAll)
		attendance.GET("/summary", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Summary)
		attendance.POST("", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "attendance", "create"), h.Mark)
	}
}

// RegisterSelfRoutes mounts the employee's own attendance under an
// already-authenticated /me group.
func RegisterSelfRoutes(me *gin.RouterGroup, h *Handler) {
	me.GET("/attendance", middleware.RateLimitByUser(3, 10), h.GetMine)
}
