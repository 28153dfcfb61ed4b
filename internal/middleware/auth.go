package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/wedding-api/internal/apperror"
	"github.com/harentsoaR/wedding-api/internal/authz"
	"github.com/harentsoaR/wedding-api/internal/utils"
)

// Context keys under which the authenticated caller is stored.
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// AuthMiddleware verifies the bearer token and puts the caller's id and
// role into the Gin context. Missing token → 401, bad or expired token
// → 403, matching the original API's status split.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			Abort(c, apperror.Unauthorized("Access denied. No token provided."))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			Abort(c, apperror.InvalidCredential(http.StatusForbidden, "Invalid token."))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// Authorize enforces the policy table's role allow-list for a
// resource/action pair. Ownership requirements are checked by the
// handler once the target document is loaded.
func Authorize(res authz.Resource, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		rule := authz.For(res, action)
		if !rule.AllowsRole(c.GetString(ContextUserRole)) {
			Abort(c, apperror.Forbidden("Access denied. Insufficient permissions."))
			return
		}
		c.Next()
	}
}

// Abort records err for the error pipeline and stops the chain.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
