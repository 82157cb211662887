package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Admin checks that the authenticated viewer has the admin role.
// Must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := GetViewer(c)
		if !viewer.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"code": "FORBIDDEN", "message": "admin role required"},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
