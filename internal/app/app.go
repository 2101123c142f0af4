package app

import (
	"context"
	"os"

	"go-hrms/internal/seed"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on the
// router. It is the composition root for the API process.
func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		// A failed seed must not stop the API from serving.
		if err := seed.Run(context.Background(), gormDB, logger); err != nil {
			logger.Warn("demo data seeding failed, continuing without it", zap.Error(err))
		}
	}

	return registerModules(router, gormDB, rdb, logger)
}
