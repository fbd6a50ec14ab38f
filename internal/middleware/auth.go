package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Yash913212/Multi-tenant-saas/internal/auth"
	"github.com/Yash913212/Multi-tenant-saas/internal/constants"
	apierrors "github.com/Yash913212/Multi-tenant-saas/internal/errors"
)

// RequireAuth validates the Bearer token and stores the caller's principal in
// the request context. Every failure mode returns the same 401 body.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authentication required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		claims, err := jwtService.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(constants.ContextKeyPrincipal, claims.Principal())
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal set by RequireAuth.
// The boolean is false when the route was not guarded.
func GetPrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	apierrors.RespondStatus(c, http.StatusUnauthorized, message)
	c.Abort()
}
