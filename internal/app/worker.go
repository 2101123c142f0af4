package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/notification"
	notifmetrics "go-hrms/internal/notification/metrics"
	"go-hrms/internal/shared/clock"
	"go-hrms/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker starts the outbox publisher and the notification dispatch loop.
// It blocks until SIGINT or SIGTERM.
func RunWorker(logger *zap.Logger) error {
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

	writer, err := connection.ConnectKafkaWithRetry(os.Getenv("KAFKA_BROKER"), 5)
	if err != nil {
		return err
	}
	defer writer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outboxRepo := kafka.NewOutboxRepository(gormDB)
	go producer.DrainOutbox(ctx, outboxRepo, writer, logger, 3*time.Second)

	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(
		notificationRepo,
		notification.NewConsoleSender(logger),
		clock.System(),
		notifmetrics.New(),
		logger,
	)
	processor := notification.NewProcessor(notificationService, notification.DefaultProcessInterval, logger)
	go processor.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()
	return nil
}
