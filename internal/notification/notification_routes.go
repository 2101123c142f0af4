package notification

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("", rbac.Authorize(enforcer, "notification", "read"), h.GetAll)
		notifications.GET("/recent", rbac.Authorize(enforcer, "notification", "read"), h.GetRecent)
		notifications.GET("/:id", rbac.Authorize(enforcer, "notification", "read"), h.GetByID)
		notifications.POST("", rbac.Authorize(enforcer, "notification", "manage"), h.Create)
		notifications.POST("/:id/retry", rbac.Authorize(enforcer, "notification", "manage"), h.ResetForRetry)
		notifications.POST("/process", rbac.Authorize(enforcer, "notification", "manage"), h.ProcessNow)
	}
}
