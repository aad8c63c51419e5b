package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mzaleski/project-hub-api/internal/errors"
	"github.com/mzaleski/project-hub-api/internal/services"
)

// RequireProjectAccess checks that the caller may read the project's channel:
// the project owner or any member qualifies.
func RequireProjectAccess(access *services.ChatAccessService) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("projectId")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		allowed, err := access.CanAccess(userID, &projectID, services.IntentRead)
		if err != nil {
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !allowed {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
