package employee

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", rbac.Authorize(enforcer, "employee", "read"), h.GetAll)
		employees.GET("/statistics", rbac.Authorize(enforcer, "employee", "read"), h.GetStatistics)
		employees.GET("/:id", rbac.Authorize(enforcer, "employee", "read"), h.GetByID)
		employees.POST("", rbac.Authorize(enforcer, "employee", "manage"), h.Create)
		employees.PUT("/:id", rbac.Authorize(enforcer, "employee", "manage"), h.Update)
		employees.DELETE("/:id", rbac.Authorize(enforcer, "employee", "manage"), h.Delete)
	}
}
