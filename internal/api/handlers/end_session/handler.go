package end_session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	endSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/end_session"
)

const (
	msgMissingSessionID = "ID сессии обязателен"
	msgSessionNotFound  = "сессия не найдена или истекла"
)

type Handler struct {
	useCase EndSessionUseCase
	logger  Logger
}

func NewHandler(useCase EndSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		h.logger.Warn("DELETE /sessions/{id} - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	if err := h.useCase.Execute(r.Context(), sessionID); err != nil {
		switch {
		case errors.Is(err, endSession.ErrSessionNotFound):
			h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("DELETE /sessions/{id} - Failed to end session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session ended: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}
