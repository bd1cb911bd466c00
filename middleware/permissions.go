package middleware

import (
	"fmt"
	"net/http"

	"github.com/dishiq/dishiq-api/models"
	"github.com/dishiq/dishiq-api/store"
	"github.com/gin-gonic/gin"
)

const actingUserKey = "acting_user"

// UserIDHeader carries the acting user's id. Authentication itself is the
// host's responsibility; by the time a request reaches this middleware the
// id is assumed to be an authenticated identity.
const UserIDHeader = "X-User-ID"

// RequirePermission resolves the acting user from the request and checks the
// requested action against the user's capability set before the handler runs.
func RequirePermission(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + UserIDHeader + " header",
				},
			})
			return
		}

		user, ok := store.Default().GetUser(userID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "Acting user not found",
				},
			})
			return
		}

		if !user.HasPermission(action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": fmt.Sprintf("Role %s may not %s", user.GetRole(), action),
				},
			})
			return
		}

		c.Set(actingUserKey, user)
		c.Next()
	}
}

// RequireUser resolves the acting user without checking a capability, for
// operations that are open to any registered identity
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Missing " + UserIDHeader + " header",
				},
			})
			return
		}

		user, ok := store.Default().GetUser(userID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "USER_NOT_FOUND",
					"message": "Acting user not found",
				},
			})
			return
		}

		c.Set(actingUserKey, user)
		c.Next()
	}
}

// ActingUser returns the user resolved by RequirePermission
func ActingUser(c *gin.Context) (models.User, error) {
	value, exists := c.Get(actingUserKey)
	if !exists {
		return nil, fmt.Errorf("no acting user in context")
	}
	user, ok := value.(models.User)
	if !ok {
		return nil, fmt.Errorf("acting user has unexpected type %T", value)
	}
	return user, nil
}
