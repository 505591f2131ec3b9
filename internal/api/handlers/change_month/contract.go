package change_month

import (
	"context"

	changeMonth "github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
)

type ChangeMonthUseCase interface {
	Execute(ctx context.Context, req *changeMonth.Request) (*changeMonth.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
