package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
	"github.com/Yash913212/Multi-tenant-saas/internal/models"
)

// RequireRole rejects callers whose role is not in the allowed set. It must
// run after RequireAuth.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			apierrors.RespondStatus(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}
		if _, ok := allowed[principal.Role]; !ok {
			apierrors.RespondStatus(c, http.StatusForbidden, "Insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
