package update_selection

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers/view"
	updateSelection "github.com/m04kA/SMC-BookingWidget/internal/usecase/update_selection"
)

const (
	msgMissingSessionID   = "ID сессии обязателен"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgInvalidSelection   = "выбранное значение недоступно"
	msgInvalidInput       = "некорректные данные формы"
)

type Handler struct {
	useCase UpdateSelectionUseCase
	logger  Logger
}

func NewHandler(useCase UpdateSelectionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sessions/{sessionId}/selection
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		h.logger.Warn("PATCH /sessions/{id}/selection - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	var req UpdateSelectionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/selection - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(sessionID)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/selection - Failed to parse request: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateSelection.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/selection - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, updateSelection.ErrInvalidSelection):
			h.logger.Warn("PATCH /sessions/{id}/selection - Value not available: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, updateSelection.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/selection - Invalid input: session_id=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /sessions/{id}/selection - Failed to update selection: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view.FromSession(result.Session, result.View))
}
