package submit_appointment

import (
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
)

// Request модель запроса на отправку записи
type Request struct {
	SessionID string
}

// Response состояние сессии после успешной записи
type Response struct {
	Session *domain.Session
	View    form.View
	Booking *domain.BookingConfirmation
}
