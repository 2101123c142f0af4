package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-hrms/internal/employee"
	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/messaging/redisbus"
	"go-hrms/internal/notification"
	"go-hrms/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer starts the kafka lifecycle consumer and the redis event
// subscriber. It blocks until SIGINT or SIGTERM.
func RunConsumer(logger *zap.Logger) error {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	notificationRepo := notification.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{os.Getenv("KAFKA_BROKER")},
		Topic:       events.EmployeeLifecycleTopic,
		GroupID:     "go-hrms-notifications",
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, notificationRepo, logger)

	subscriber := redisbus.NewSubscriber(rdb, notificationRepo, employeeRepo, logger)
	go func() {
		if err := subscriber.Run(ctx); err != nil {
			logger.Error("redis subscriber stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	return nil
}
