package change_month

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	changeMonth "github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
)

// SupersededHeader выставляется, когда загрузка была вытеснена более новой
const SupersededHeader = "X-Availability-Superseded"

// ChangeMonthRequest HTTP request model
type ChangeMonthRequest struct {
	Month string `json:"month"` // "2025-04"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ChangeMonthRequest) ToUseCaseRequest(sessionID string) (*changeMonth.Request, error) {
	month, err := domain.ParseMonth(r.Month)
	if err != nil {
		return nil, err
	}
	return &changeMonth.Request{SessionID: sessionID, Month: month}, nil
}
