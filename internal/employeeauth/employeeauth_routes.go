package employeeauth

import (
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc, h *Handler, logger *zap.Logger) {
	group := r.Group("/employee-auth")
	group.Use(middleware.ContextLogger(logger))

	group.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)

	authed := group.Group("")
	authed.Use(authn)
	authed.Use(middleware.RoleMiddleware(domain.RoleEmployee))
	{
		authed.GET("/me", middleware.RateLimitByUser(2, 5), h.Me)
		authed.PUT("/change-password", middleware.RateLimitByUser(0.2, 2), h.ChangePassword)
		// Face images are large; keep enrollment slow.
		authed.POST("/enroll-face", middleware.RateLimitByUser(0.1, 1), h.EnrollFace)
	}
}
