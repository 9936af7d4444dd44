package handlers

import (
	"net/http"
	"strings"

	"taxi_dispatch/internal/models"

	"github.com/gin-gonic/gin"
)

// Gin context keys set by sessionMiddleware.
const (
	ctxKeyRole = "role"
	ctxKeyName = "name"
)

// sessionMiddleware requires a valid bearer token AND an active session:
// logout invalidates every outstanding token immediately, matching the
// single-operator semantics of the terminal.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	claims, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	if !h.services.Current().LoggedIn {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "not logged in",
		})
		return
	}

	c.Set(ctxKeyRole, claims.Role)
	c.Set(ctxKeyName, claims.Name)
	c.Next()
}

// adminOnly gates the credential administration endpoints.
func (h *Handler) adminOnly(c *gin.Context) {
	if c.GetString(ctxKeyRole) != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "admin only",
		})
		return
	}
	c.Next()
}
