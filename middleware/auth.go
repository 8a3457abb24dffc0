// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"asokatrip/models"
	"asokatrip/utils"
)

// TokenVerifier resolves a Firebase ID token to the admin it belongs to.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*models.AdminUser, error)
}

// AdminAuthMiddleware requires a valid Firebase ID token as bearer token and stores the admin in
// the context under utils.ContextAdminKey.
func AdminAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return requireAdmin(verifier, false)
}

// StreamAuthMiddleware is AdminAuthMiddleware for EventSource endpoints. EventSource cannot set
// headers, so the token may also come from ?token=. Mount it on stream routes only.
func StreamAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return requireAdmin(verifier, true)
}

func requireAdmin(verifier TokenVerifier, allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" && allowQuery {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Missing or invalid Authorization header"})
			return
		}

		admin, err := verifier.Verify(c.Request.Context(), tokenString)
		if err != nil || admin == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Error: "Invalid or expired token"})
			return
		}

		c.Set(utils.ContextAdminKey, admin)
		c.Next()
	}
}

// CurrentAdmin returns the admin set by AdminAuthMiddleware.
func CurrentAdmin(c *gin.Context) (*models.AdminUser, bool) {
	v, ok := c.Get(utils.ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.AdminUser)
	return admin, ok && admin != nil
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}
