package notification_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go-hrms/internal/notification"

	"github.com/stretchr/testify/assert"
)

type countingService struct {
	notification.Service
	calls atomic.Int32
	err   error
}

func (s *countingService) ProcessPending(_ context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestProcessor_RunUntilCancelled(t *testing.T) {
	svc := &countingService{}
	p := notification.NewProcessor(svc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 3
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("processor did not stop after cancellation")
	}
}

func TestProcessor_KeepsRunningAfterErrors(t *testing.T) {
	svc := &countingService{err: errors.New("db down")}
	p := notification.NewProcessor(svc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 2
	}, time.Second, time.Millisecond)
}
