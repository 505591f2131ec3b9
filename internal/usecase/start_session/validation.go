package start_session

import (
	"fmt"
	"strings"
	"time"
)

// resolveConfig подставляет значения по умолчанию и валидирует конфигурацию
func resolveConfig(cfg InitialConfig, defaults Defaults) (InitialConfig, *time.Location, error) {
	cfg.CompanyID = strings.TrimSpace(cfg.CompanyID)
	if cfg.CompanyID == "" {
		cfg.CompanyID = defaults.CompanyID
	}
	if cfg.CompanyID == "" {
		return cfg, nil, fmt.Errorf("%w: companyId is required", ErrInvalidInput)
	}

	if cfg.ServiceID != nil && *cfg.ServiceID <= 0 {
		return cfg, nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	if cfg.Timezone == "" {
		cfg.Timezone = defaults.Timezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return cfg, nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, cfg.Timezone)
	}

	return cfg, loc, nil
}
