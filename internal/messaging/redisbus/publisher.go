package redisbus

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher broadcasts domain events over redis pub/sub. Subscribers that are
// offline miss the event; that is acceptable for notification fan-out.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(rdb *redis.Client, logger ...*zap.Logger) *Publisher {
	l := zap.L().Named("redisbus.publisher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("redisbus.publisher")
	}
	return &Publisher{rdb: rdb, logger: l}
}

func (p *Publisher) Publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		p.logger.Error("publish event failed",
			zap.String("channel", channel),
			zap.Error(err),
		)
		return err
	}

	p.logger.Debug("event published", zap.String("channel", channel))
	return nil
}
