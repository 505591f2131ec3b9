package get_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
)

// Response текущее состояние сессии
type Response struct {
	Session *domain.Session
	View    form.View
}

// UseCase use case чтения состояния виджета
type UseCase struct {
	sessions     SessionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionManager, logger Logger) *UseCase {
	return &UseCase{
		sessions:     sessions,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает сессию и производные списки формы
func (uc *UseCase) Execute(ctx context.Context, sessionID string) (*Response, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			uc.logger.Warn("GetSession: session=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("GetSession: session=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	return &Response{
		Session: session,
		View:    form.DeriveSession(session, uc.timeProvider.Now()),
	}, nil
}
