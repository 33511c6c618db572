package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easyshop/ledger/internal/apperrors"
)

// tenantIDKey is the key used to store the resolved tenant ID in the context.
const tenantIDKey = contextKey("tenantID")

// TenantHeader is the request header carrying the caller's tenant.
const TenantHeader = "X-Tenant-ID"

// TenantMiddleware resolves the tenant from the request header and stores it
// in the request context. Requests without a tenant are rejected.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := c.GetHeader(TenantHeader)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrNoTenant.Error()})
			return
		}

		ctx := context.WithValue(c.Request.Context(), tenantIDKey, tenantID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// UserHeader is the request header carrying the acting user, set by the
// gateway in front of this service.
const UserHeader = "X-User-ID"

// GetUserIDFromContext retrieves the acting user from the request. Internal
// callers that carry no user identity are attributed to "system".
func GetUserIDFromContext(c *gin.Context) string {
	if userID := c.GetHeader(UserHeader); userID != "" {
		return userID
	}
	return "system"
}

// GetTenantFromContext retrieves the tenant ID resolved by TenantMiddleware.
func GetTenantFromContext(c *gin.Context) (string, bool) {
	tenantID, ok := c.Request.Context().Value(tenantIDKey).(string)
	if !ok || tenantID == "" {
		return "", false
	}
	return tenantID, true
}
