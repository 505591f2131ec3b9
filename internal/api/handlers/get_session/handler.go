package get_session

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers/view"
	getSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/get_session"
)

const (
	msgMissingSessionID = "ID сессии обязателен"
	msgSessionNotFound  = "сессия не найдена или истекла"
)

type Handler struct {
	useCase GetSessionUseCase
	logger  Logger
}

func NewHandler(useCase GetSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		h.logger.Warn("GET /sessions/{id} - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, getSession.ErrSessionNotFound):
			h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		default:
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view.FromSession(result.Session, result.View))
}
