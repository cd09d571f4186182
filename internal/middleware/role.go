package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MesaLibreServices/mesa-scheduler/internal/models"
)

// AdminOnly gates a route group behind the ADMIN role. Must run after
// AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}
