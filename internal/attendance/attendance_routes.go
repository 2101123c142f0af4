package attendance

import (
	"go-hrms/internal/middleware"
	"go-hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *rbac.Enforcer, rdb *redis.Client) {
	attendances := r.Group("/attendances")
	attendances.Use(middleware.AuthMiddleware())
	{
		attendances.GET("", rbac.Authorize(enforcer, "attendance", "read"), h.GetAll)
		attendances.GET("/:id", rbac.Authorize(enforcer, "attendance", "read"), h.GetByID)
		attendances.GET("/employee/:employeeId", rbac.Authorize(enforcer, "attendance", "read"), h.GetByEmployee)
		attendances.GET("/employee/:employeeId/summary/:year/:month", rbac.Authorize(enforcer, "attendance", "read"), h.GetMonthlySummary)
		attendances.POST("/check-in", rbac.Authorize(enforcer, "attendance", "create"), middleware.Idempotency(rdb), h.CheckIn)
		attendances.POST("/check-out", rbac.Authorize(enforcer, "attendance", "create"), h.CheckOut)
		attendances.POST("", rbac.Authorize(enforcer, "attendance", "manage"), h.Create)
		attendances.PUT("/:id", rbac.Authorize(enforcer, "attendance", "manage"), h.Update)
		attendances.DELETE("/:id", rbac.Authorize(enforcer, "attendance", "manage"), h.Delete)
	}
}
