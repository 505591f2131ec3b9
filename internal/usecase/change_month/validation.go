package change_month

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	if req.Month.Month < time.January || req.Month.Month > time.December {
		return fmt.Errorf("%w: month out of range", ErrInvalidInput)
	}
	return nil
}

// validateMonth проверяет, что месяц не раньше текущего в зоне пользователя
func validateMonth(s *domain.Session, month domain.Month, now time.Time) error {
	current := domain.MonthOf(form.Today(s, now))
	if month.Before(current) {
		return fmt.Errorf("%w: %s is before %s", ErrMonthInPast, month, current)
	}
	return nil
}
