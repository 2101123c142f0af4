package leave

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	leaves := r.Group("/leave-requests")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", rbac.Authorize(enforcer, "leave", "read"), h.GetAll)
		leaves.GET("/:id", rbac.Authorize(enforcer, "leave", "read"), h.GetByID)
		leaves.GET("/employee/:employeeId", rbac.Authorize(enforcer, "leave", "read"), h.GetByEmployee)
		leaves.POST("", rbac.Authorize(enforcer, "leave", "create"), h.Create)
		leaves.POST("/:id/approve", rbac.Authorize(enforcer, "leave", "approve"), h.Approve)
		leaves.POST("/:id/reject", rbac.Authorize(enforcer, "leave", "approve"), h.Reject)
		leaves.POST("/:id/cancel", rbac.Authorize(enforcer, "leave", "create"), h.Cancel)
	}
}
