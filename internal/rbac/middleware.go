package rbac

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
	"go-hrms/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Authorize gates a route on the caller's role, which the auth middleware
// stores in the gin context.
func Authorize(enforcer *Enforcer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing role in auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Can(role, obj, act)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, apperror.CodeInternalError, "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden, "you do not have permission to perform this action", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
