package end_session

import (
	"context"
	"errors"
	"fmt"

	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
)

// UseCase use case закрытия виджета: отменяет загрузку и удаляет снимок вместе с сессией
type UseCase struct {
	sessions SessionManager
	inflight FetchRegistry
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionManager, inflight FetchRegistry, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		inflight: inflight,
		logger:   logger,
	}
}

// Execute выполняет use case закрытия виджета
func (uc *UseCase) Execute(ctx context.Context, sessionID string) error {
	uc.inflight.Cancel(sessionID)

	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			uc.logger.Warn("EndSession: session=%s not found", sessionID)
			return ErrSessionNotFound
		}
		uc.logger.Error("EndSession: session=%s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrInternal, err)
	}

	uc.logger.Info("EndSession: session=%s closed", sessionID)
	return nil
}
