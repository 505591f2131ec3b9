package start_session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	"github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
	"github.com/m04kA/SMC-BookingWidget/pkg/types"
)

// UseCase use case открытия виджета: создает сессию и загружает первый месяц
type UseCase struct {
	sessions     SessionManager
	loader       MonthLoader
	metrics      Metrics
	defaults     Defaults
	newID        func() string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionManager,
	loader MonthLoader,
	metrics Metrics,
	defaults Defaults,
	logger Logger,
) *UseCase {
	if defaults.Timezone == "" {
		defaults.Timezone = domain.DefaultTimezone
	}
	return &UseCase{
		sessions:     sessions,
		loader:       loader,
		metrics:      metrics,
		defaults:     defaults,
		newID:        uuid.NewString,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case открытия виджета
func (uc *UseCase) Execute(ctx context.Context, cfg InitialConfig) (*Response, error) {
	// 1. Валидация и значения по умолчанию
	cfg, loc, err := resolveConfig(cfg, uc.defaults)
	if err != nil {
		uc.logger.Warn("StartSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Месяц первой загрузки
	current := domain.MonthOf(types.NewDate(uc.timeProvider.Now().In(loc)))
	month := current
	if cfg.Month != nil {
		if cfg.Month.Before(current) {
			uc.logger.Warn("StartSession: requested month=%s is before %s", cfg.Month, current)
			return nil, fmt.Errorf("%w: %s", ErrMonthInPast, cfg.Month)
		}
		month = *cfg.Month
	}

	// 3. Создаем сессию с предвыбранной услугой
	session := &domain.Session{
		ID:        uc.newID(),
		CompanyID: cfg.CompanyID,
		Timezone:  cfg.Timezone,
		Month:     month,
	}
	if cfg.ServiceID != nil {
		form.ApplyToSession(session, uc.timeProvider.Now(), form.SelectService{ServiceID: cfg.ServiceID})
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		uc.logger.Error("StartSession: failed to create session: %v", err)
		return nil, fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
	}
	uc.metrics.ObserveSessionCreated(cfg.ServiceID != nil)
	uc.logger.Info("StartSession: session=%s, company=%s, timezone=%s, month=%s, preselected_service=%t",
		session.ID, session.CompanyID, session.Timezone, month, cfg.ServiceID != nil)

	// 4. Первая загрузка доступности
	loaded, err := uc.loader.Execute(ctx, &change_month.Request{SessionID: session.ID, Month: month})
	if err != nil {
		uc.logger.Error("StartSession: session=%s: initial load failed: %v", session.ID, err)
		return nil, fmt.Errorf("%w: initial load failed: %v", ErrInternal, err)
	}

	return &Response{Session: loaded.Session, View: loaded.View}, nil
}
