package department

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer) {
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", rbac.Authorize(enforcer, "department", "read"), h.GetAll)
		departments.GET("/:id", rbac.Authorize(enforcer, "department", "read"), h.GetByID)
		departments.POST("", rbac.Authorize(enforcer, "department", "manage"), h.Create)
		departments.PUT("/:id", rbac.Authorize(enforcer, "department", "manage"), h.Update)
		departments.DELETE("/:id", rbac.Authorize(enforcer, "department", "manage"), h.Delete)
	}
}
