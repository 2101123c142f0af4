package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultProcessInterval = 10 * time.Second

// Processor runs the dispatch loop: one ProcessPending pass per tick until
// the context is cancelled. A pass that errors is logged and the loop keeps
// running.
type Processor struct {
	service  Service
	interval time.Duration
	logger   *zap.Logger
}

func NewProcessor(service Service, interval time.Duration, logger ...*zap.Logger) *Processor {
	if interval <= 0 {
		interval = DefaultProcessInterval
	}
	l := zap.L().Named("notification.processor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.processor")
	}
	return &Processor{service: service, interval: interval, logger: l}
}

func (p *Processor) Run(ctx context.Context) {
	p.logger.Info("notification processor started", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification processor stopped")
			return
		case <-ticker.C:
			if err := p.service.ProcessPending(ctx); err != nil {
				p.logger.Error("dispatch cycle failed", zap.Error(err))
			}
		}
	}
}
