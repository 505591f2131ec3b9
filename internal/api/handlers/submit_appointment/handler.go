package submit_appointment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	submitAppointment "github.com/m04kA/SMC-BookingWidget/internal/usecase/submit_appointment"
)

const (
	msgMissingSessionID    = "ID сессии обязателен"
	msgSessionNotFound     = "сессия не найдена или истекла"
	msgIncompleteSelection = "заполните все обязательные поля"
	msgInvalidInput        = "некорректные данные формы"
	msgSubmissionInFlight  = "запись уже отправляется"
)

type Handler struct {
	useCase SubmitAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase SubmitAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		h.logger.Warn("POST /sessions/{id}/appointments - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &submitAppointment.Request{SessionID: sessionID})
	if err != nil {
		var backendErr *submitAppointment.BackendError
		switch {
		case errors.As(err, &backendErr):
			h.logger.Warn("POST /sessions/{id}/appointments - Backend rejected appointment: session_id=%s, message=%s",
				sessionID, backendErr.Message)
			handlers.RespondError(w, http.StatusBadGateway, backendErr.Message)

		case errors.Is(err, submitAppointment.ErrSessionNotFound):
			h.logger.Warn("POST /sessions/{id}/appointments - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, submitAppointment.ErrSubmissionInFlight):
			h.logger.Warn("POST /sessions/{id}/appointments - Submission in flight: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgSubmissionInFlight)

		case errors.Is(err, submitAppointment.ErrIncompleteSelection):
			h.logger.Warn("POST /sessions/{id}/appointments - Incomplete selection: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgIncompleteSelection)

		case errors.Is(err, submitAppointment.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/appointments - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions/{id}/appointments - Failed to submit appointment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/appointments - Appointment created: session_id=%s, service_id=%d, employee_id=%d",
		sessionID, result.Booking.ServiceID, result.Booking.EmployeeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
