package submit_appointment

import (
	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers/view"
	submitAppointment "github.com/m04kA/SMC-BookingWidget/internal/usecase/submit_appointment"
)

// SubmitAppointmentResponse HTTP response model
type SubmitAppointmentResponse struct {
	Booking *view.BookingResponse `json:"booking"`
	Session *view.SessionResponse `json:"session"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitAppointment.Response) *SubmitAppointmentResponse {
	return &SubmitAppointmentResponse{
		Booking: view.FromBooking(resp.Booking, resp.Session.Location()),
		Session: view.FromSession(resp.Session, resp.View),
	}
}
