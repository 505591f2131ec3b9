package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) DeleteExpired(context.Context) (int64, error) {
	c.calls.Add(1)
	return 2, c.err
}

func TestJanitor_RunStopsOnCancel(t *testing.T) {
	cleaner := &countingCleaner{}
	j := NewJanitor(cleaner, 5*time.Millisecond, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return cleaner.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitor_RunOnceSurvivesErrors(t *testing.T) {
	cleaner := &countingCleaner{err: errors.New("db down")}
	j := NewJanitor(cleaner, time.Minute, logger.NewNop())

	j.RunOnce(context.Background())
	j.RunOnce(context.Background())
	assert.Equal(t, int32(2), cleaner.calls.Load())
}
