package submit_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
)

// SessionManager интерфейс менеджера сессий
type SessionManager interface {
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error)
}

// AppointmentClient интерфейс клиента бэкенда записи
type AppointmentClient interface {
	CreateAppointment(ctx context.Context, req *domain.AppointmentRequest) error
}

// MonthLoader перезагружает доступность отображаемого месяца
type MonthLoader interface {
	Execute(ctx context.Context, req *change_month.Request) (*change_month.Response, error)
}

// Metrics интерфейс метрик отправки записи
type Metrics interface {
	ObserveSubmission(result string)
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
