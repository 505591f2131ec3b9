package change_month

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers/view"
	changeMonth "github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
)

const (
	msgMissingSessionID   = "ID сессии обязателен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidMonth       = "некорректный формат месяца, ожидается YYYY-MM"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgMonthInPast        = "нельзя перейти на прошедший месяц"
)

type Handler struct {
	useCase ChangeMonthUseCase
	logger  Logger
}

func NewHandler(useCase ChangeMonthUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sessions/{sessionId}/month
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		h.logger.Warn("PUT /sessions/{id}/month - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	var req ChangeMonthRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/month - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID)
	if err != nil {
		h.logger.Warn("PUT /sessions/{id}/month - Invalid month: session_id=%s, month=%q", sessionID, req.Month)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, changeMonth.ErrSessionNotFound):
			h.logger.Warn("PUT /sessions/{id}/month - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, changeMonth.ErrMonthInPast):
			h.logger.Warn("PUT /sessions/{id}/month - Month in past: session_id=%s, month=%s", sessionID, req.Month)
			handlers.RespondBadRequest(w, msgMonthInPast)

		case errors.Is(err, changeMonth.ErrInvalidInput):
			h.logger.Warn("PUT /sessions/{id}/month - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("PUT /sessions/{id}/month - Failed to change month: session_id=%s, month=%s, error=%v",
				sessionID, req.Month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Superseded {
		w.Header().Set(SupersededHeader, "true")
	}
	handlers.RespondJSON(w, http.StatusOK, view.FromSession(result.Session, result.View))
}
