package update_selection

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.SessionID) == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	if err := validateLength("name", req.Name, domain.MaxNameLength); err != nil {
		return err
	}
	if err := validateLength("phone", req.Phone, domain.MaxPhoneLength); err != nil {
		return err
	}
	if err := validateLength("note", req.Note, domain.MaxNoteLength); err != nil {
		return err
	}
	if req.ServiceID != nil && req.ServiceID.Value != nil && *req.ServiceID.Value <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.EmployeeID != nil && req.EmployeeID.Value != nil && *req.EmployeeID.Value <= 0 {
		return fmt.Errorf("%w: employeeId must be positive", ErrInvalidInput)
	}
	return nil
}

func validateLength(field string, value *string, max int) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > max {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

// parseDate разбирает дату в зоне пользователя; пустая строка означает сброс
func parseDate(raw string, loc *time.Location) (types.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return types.Date{}, nil
	}
	date, err := types.ParseDateIn(raw, loc)
	if err != nil {
		return types.Date{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return date, nil
}

// parseSlot разбирает время слота; пустая строка означает сброс
func parseSlot(raw string) (types.TimeString, error) {
	if strings.TrimSpace(raw) == "" {
		return types.TimeString{}, nil
	}
	slot, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return types.TimeString{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return slot, nil
}
