package payroll

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
	payrolls := r.Group("/payrolls")
	payrolls.Use(authn)
	payrolls.Use(middleware.ContextLogger(logger))
	{
		payrolls.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "create"),
			middleware.Idempotency(rdb),
			h.Generate,
		)
		payrolls.GET("", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetAll)
		payrolls.GET("/export", middleware.RateLimitByUser(0.2, 2), middleware.RBACAuthorize(rbacService, "payroll", "export"), h.Export)
		payrolls.GET("/:id", middleware.RateLimitByUser(3, 10), middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetByID)
		payrolls.GET("/:id/payslip", middleware.RateLimitByUser(1, 5), middleware.RBACAuthorize(rbacService, "payroll", "read"), h.Payslip)
	}
}

// RegisterSelfRoutes mounts the employee's own payrolls under an
// already-authenticated /me group.
func RegisterSelfRoutes(me *gin.RouterGroup, h *Handler) {
	me.GET("/payrolls", middleware.RateLimitByUser(3, 10), h.GetMine)
}
