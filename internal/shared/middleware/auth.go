package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-backend/internal/policy"
	"inkwell-backend/pkg/jwt"
)

const viewerKey = "viewer"

// Auth requires a valid bearer access token and stores the resulting
// viewer identity in the request context.
func Auth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer, ok := viewerFromHeader(c, manager)
		if !ok {
			c.JSON(401, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid access token"},
			})
			c.Abort()
			return
		}

		setViewer(c, viewer)
		c.Next()
	}
}

// OptionalAuth builds a viewer from the bearer token when one is
// present and falls back to an anonymous viewer otherwise. Used on
// read endpoints that anonymous readers may hit.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if viewer, ok := viewerFromHeader(c, manager); ok {
			setViewer(c, viewer)
		} else {
			setViewer(c, policy.Anonymous())
		}
		c.Next()
	}
}

func viewerFromHeader(c *gin.Context, manager *jwt.Manager) (policy.Viewer, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return policy.Viewer{}, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return policy.Viewer{}, false
	}

	claims, err := manager.ValidateAccessToken(parts[1])
	if err != nil {
		return policy.Viewer{}, false
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return policy.Viewer{}, false
	}

	return policy.Authenticated(userID, policy.Role(claims.Role)), true
}

func setViewer(c *gin.Context, v policy.Viewer) {
	c.Set(viewerKey, v)
	if v.Authenticated {
		c.Set("user_id", v.ID.String())
		c.Set("role", string(v.Role))
	}
}

// GetViewer reads the viewer set by Auth/OptionalAuth. Handlers behind
// neither middleware get an anonymous viewer.
func GetViewer(c *gin.Context) policy.Viewer {
	if v, exists := c.Get(viewerKey); exists {
		if viewer, ok := v.(policy.Viewer); ok {
			return viewer
		}
	}
	return policy.Anonymous()
}
