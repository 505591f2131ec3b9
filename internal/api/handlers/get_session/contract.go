package get_session

import (
	"context"

	getSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/get_session"
)

type GetSessionUseCase interface {
	Execute(ctx context.Context, sessionID string) (*getSession.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
