package start_session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
)

// SessionManager интерфейс менеджера сессий
type SessionManager interface {
	Create(ctx context.Context, s *domain.Session) error
}

// MonthLoader загружает доступность месяца для сессии
type MonthLoader interface {
	Execute(ctx context.Context, req *change_month.Request) (*change_month.Response, error)
}

// Metrics интерфейс метрик сессий
type Metrics interface {
	ObserveSessionCreated(preselectedService bool)
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
