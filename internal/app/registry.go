package app

import (
	"go-hrms/internal/attendance"
	"go-hrms/internal/auth"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/redisbus"
	"go-hrms/internal/middleware"
	"go-hrms/internal/notification"
	notifmetrics "go-hrms/internal/notification/metrics"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/clock"
	"go-hrms/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(router *gin.Engine, gormDB *gorm.DB, rdb *redis.Client, logger *zap.Logger) error {
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	clk := clock.System()

	attendanceRepo := attendance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	publisher := redisbus.NewPublisher(rdb, logger)
	detector := attendance.NewDetector(attendance.DefaultPolicy())
	aggregator := attendance.NewAggregator(detector, clk)

	attendanceService := attendance.NewService(gormDB, attendanceRepo, leaveRepo, detector, aggregator, publisher, clk, logger)
	leaveService := leave.NewService(gormDB, leaveRepo, publisher, clk, logger)
	notificationService := notification.NewService(notificationRepo, notification.NewConsoleSender(logger), clk, notifmetrics.New(), logger)
	departmentService := department.NewService(departmentRepo, logger)
	employeeService := employee.NewService(gormDB, employeeRepo, counterRepo, outboxRepo, rdb, clk, logger)
	authService := auth.NewService(authRepo, employeeRepo, clk, logger)

	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	auth.RegisterRoutes(api, auth.NewHandler(authService))
	attendance.RegisterRoutes(api, attendance.NewHandlerWithRedis(attendanceService, rdb), enforcer, rdb)
	leave.RegisterRoutes(api, leave.NewHandler(leaveService), enforcer)
	notification.RegisterRoutes(api, notification.NewHandler(notificationService), enforcer)
	department.RegisterRoutes(api, department.NewHandler(departmentService), enforcer)
	employee.RegisterRoutes(api, employee.NewHandler(employeeService), enforcer)

	return nil
}
