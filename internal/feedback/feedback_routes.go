package feedback

import (
	"go-hrms/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterSelfRoutes mounts the assistant under an already-authenticated
// /me group. Chat calls may reach the completion API, so they are throttled
// harder than reads.
func RegisterSelfRoutes(me *gin.RouterGroup, h *Handler) {
	fb := me.Group("/feedback")
	{
		fb.GET("", middleware.RateLimitByUser(3, 10), h.History)
		fb.POST("/chat", middleware.RateLimitByUser(0.2, 3), h.Chat)
		fb.POST("/review", middleware.RateLimitByUser(0.2, 3), h.Review)
	}
}
