package create_session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	startSession "github.com/m04kA/SMC-BookingWidget/internal/usecase/start_session"
)

// CreateSessionRequest HTTP request model (все поля необязательны)
type CreateSessionRequest struct {
	CompanyID string  `json:"companyId,omitempty"`
	ServiceID *int64  `json:"serviceId,omitempty"` // предвыбранная услуга со страницы
	Timezone  string  `json:"timezone,omitempty"`  // "Europe/Berlin"
	Month     *string `json:"month,omitempty"`     // "2025-03"
}

// ToUseCaseConfig конвертирует HTTP запрос в начальную конфигурацию виджета.
// serviceId из query string страницы используется, если в теле его нет.
func (r *CreateSessionRequest) ToUseCaseConfig(queryServiceID string) (startSession.InitialConfig, error) {
	cfg := startSession.InitialConfig{
		CompanyID: r.CompanyID,
		ServiceID: r.ServiceID,
		Timezone:  r.Timezone,
	}

	if cfg.ServiceID == nil && strings.TrimSpace(queryServiceID) != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(queryServiceID), 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid serviceId %q: %w", queryServiceID, err)
		}
		cfg.ServiceID = &id
	}

	if r.Month != nil && strings.TrimSpace(*r.Month) != "" {
		month, err := domain.ParseMonth(*r.Month)
		if err != nil {
			return cfg, err
		}
		cfg.Month = &month
	}

	return cfg, nil
}
