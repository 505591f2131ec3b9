package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers"
	"github.com/m04kA/SMC-BookingWidget/internal/api/handlers/view"
	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	startSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/start_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidMonth       = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidInput       = "некорректные параметры виджета"
	msgUnknownTimezone    = "неизвестная временная зона"
	msgMonthInPast        = "нельзя открыть прошедший месяц"
)

type Handler struct {
	useCase StartSessionUseCase
	logger  Logger
}

func NewHandler(useCase StartSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
// Query params: serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToUseCaseConfig(r.URL.Query().Get("serviceId"))
	if err != nil {
		h.logger.Warn("POST /sessions - Failed to parse request: %v", err)
		if errors.Is(err, domain.ErrInvalidMonth) {
			handlers.RespondBadRequest(w, msgInvalidMonth)
		} else {
			handlers.RespondBadRequest(w, msgInvalidServiceID)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, startSession.ErrUnknownTimezone):
			h.logger.Warn("POST /sessions - Unknown timezone: timezone=%s", req.Timezone)
			handlers.RespondBadRequest(w, msgUnknownTimezone)

		case errors.Is(err, startSession.ErrMonthInPast):
			h.logger.Warn("POST /sessions - Month in past: company_id=%s", req.CompanyID)
			handlers.RespondBadRequest(w, msgMonthInPast)

		case errors.Is(err, startSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions - Failed to start session: company_id=%s, error=%v", req.CompanyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session started: session_id=%s, company_id=%s",
		result.Session.ID, result.Session.CompanyID)
	handlers.RespondJSON(w, http.StatusCreated, view.FromSession(result.Session, result.View))
}
