package change_month

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
)

// SessionManager интерфейс менеджера сессий
type SessionManager interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Update выполняет read-modify-write сессии под ее мьютексом
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

// AvailabilityClient интерфейс клиента бэкенда записи
type AvailabilityClient interface {
	GetMonthAvailability(ctx context.Context, companyID string, month domain.Month, loc *time.Location) (*domain.MonthSnapshot, error)
}

// FetchRegistry интерфейс реестра незавершенных загрузок
type FetchRegistry interface {
	Begin(ctx context.Context, sessionID string, generation uint64) context.Context
	Done(sessionID string, generation uint64)
}

// Metrics интерфейс метрик загрузки доступности
type Metrics interface {
	ObserveFetch(result string, duration time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
