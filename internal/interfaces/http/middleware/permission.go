package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telops/backend/internal/domain/identity"
	"github.com/telops/backend/internal/interfaces/http/dto"
)

// RequireRole allows only actors whose role passes the check.
// Must run after Auth.
func RequireRole(check func(identity.Role) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !check(actor.Role) {
			requestID := GetRequestID(c)
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID("FORBIDDEN",
					"Role does not permit this operation", requestID))
			return
		}
		c.Next()
	}
}

// RequireCatalogManager gates catalog mutations (admin or controller)
func RequireCatalogManager() gin.HandlerFunc {
	return RequireRole(identity.Role.CanManageCatalog)
}

// RequireSaleValidator gates validate/complete (controller or agent)
func RequireSaleValidator() gin.HandlerFunc {
	return RequireRole(identity.Role.CanValidateSales)
}

// RequireFlagReviewer gates flag review and scanning (admin or controller)
func RequireFlagReviewer() gin.HandlerFunc {
	return RequireRole(identity.Role.CanReviewFlags)
}

// RequireUserManager gates user administration (admin only)
func RequireUserManager() gin.HandlerFunc {
	return RequireRole(identity.Role.CanManageUsers)
}
