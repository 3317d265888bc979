package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	autherrors "go-hrms/internal/auth/errors"
	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Keys set on the gin context by AuthMiddleware.
const (
	ContextUserID       = "user_id"
	ContextRole         = "role"
	ContextEmail        = "email"
	ContextEmployeeCode = "employee_code"
	ContextName         = "name"
)

// accessClaims mirrors what auth.TokenIssuer signs. Admin tokens carry only
// user_id and role; employee tokens add the identity fields.
type accessClaims struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	Email        string `json:"email,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	Name         string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func bearerToken(c *gin.Context) string {
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok && token != "" {
		return token
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func abortWith(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err.HTTPStatus, err.Code, err.Message, nil)
	c.Abort()
}

// AuthMiddleware verifies the HS256 access token from the Authorization
// header, falling back to the access_token cookie, and exposes its claims
// under the Context* keys. secret must be the key auth.TokenIssuer signs with.
func AuthMiddleware(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		var claims accessClaims
		_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			abortWith(c, autherrors.ErrTokenExpired)
			return
		case err != nil:
			abortWith(c, autherrors.ErrInvalidToken)
			return
		}

		if claims.UserID == "" || claims.Role == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Token is missing user_id or role", nil)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextEmployeeCode, claims.EmployeeCode)
		c.Set(ContextName, claims.Name)

		ctx := contextutil.WithUserID(c.Request.Context(), claims.UserID)
		ctx = contextutil.WithRole(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RoleMiddleware allows only the listed roles through.
func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role := c.GetString(ContextRole); role != "" && slices.Contains(allowedRoles, role) {
			c.Next()
			return
		}
		abortWith(c, autherrors.ErrForbidden)
	}
}
