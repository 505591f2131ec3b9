package session

import (
	"context"
	"time"
)

// ExpiredCleaner хранилище, которому нужна периодическая очистка истекших сессий
type ExpiredCleaner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Janitor периодически удаляет истекшие сессии
type Janitor struct {
	store    ExpiredCleaner
	interval time.Duration
	logger   Logger
}

// NewJanitor создает очистку с указанным периодом
func NewJanitor(store ExpiredCleaner, interval time.Duration, logger Logger) *Janitor {
	return &Janitor{store: store, interval: interval, logger: logger}
}

// Run выполняет очистку до отмены ctx
func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход очистки
func (j *Janitor) RunOnce(ctx context.Context) {
	removed, err := j.store.DeleteExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			j.logger.Error("Janitor: failed to delete expired sessions: %v", err)
		}
		return
	}
	if removed > 0 {
		j.logger.Info("Janitor: removed %d expired sessions", removed)
	}
}
