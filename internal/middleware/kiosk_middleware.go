package middleware

import (
	"crypto/subtle"
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const KioskKeyHeader = "X-Kiosk-Key"

// KioskKey guards unauthenticated kiosk endpoints with a shared key.
// An empty expected key rejects every request.
func KioskKey(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(KioskKeyHeader)
		if expected == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Invalid kiosk key", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
