package auth

import (
	"go-hrms/internal/domain"
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, authn gin.HandlerFunc, h *Handler, rbacService middleware.RBACService, logger *zap.Logger) {
	auth := r.Group("/auth")
	auth.Use(middleware.ContextLogger(logger))

	auth.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)

	authed := auth.Group("")
	authed.Use(authn)
	authed.Use(middleware.RoleMiddleware(domain.AdminRoles...))
	{
		authed.GET("/me", middleware.RateLimitByUser(2, 5), h.Me)
		authed.PUT("/change-password", middleware.RateLimitByUser(0.2, 2), h.ChangePassword)
		authed.POST("/register", middleware.RateLimitByUser(0.5, 2), middleware.RBACAuthorize(rbacService, "admin", "manage"), h.Register)

		admins := authed.Group("/admins")
		admins.Use(middleware.RBACAuthorize(rbacService, "admin", "manage"))
		{
			admins.GET("", middleware.RateLimitByUser(2, 5), h.ListAdmins)
			admins.GET("/:id", middleware.RateLimitByUser(2, 5), h.GetAdmin)
			admins.PUT("/:id", middleware.RateLimitByUser(0.5, 2), h.UpdateAdmin)
			admins.DELETE("/:id", middleware.RateLimitByUser(0.5, 2), h.DeleteAdmin)
		}
	}
}
