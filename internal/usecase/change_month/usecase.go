package change_month

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/integrations/scheduling"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
	"github.com/m04kA/SMC-BookingWidget/pkg/metrics"
)

// UseCase use case загрузки доступности за месяц.
// Каждая загрузка получает новое поколение; результат применяется, только если поколение все еще текущее.
type UseCase struct {
	sessions     SessionManager
	client       AvailabilityClient
	inflight     FetchRegistry
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionManager,
	client AvailabilityClient,
	inflight FetchRegistry,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		client:       client,
		inflight:     inflight,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case смены месяца
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeMonth: session=%s, month=%s", req.SessionID, req.Month)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeMonth: validation failed: %v", err)
		return nil, err
	}

	// 2. Новое поколение загрузки; предыдущая загрузка сессии отменяется
	var (
		generation uint64
		companyID  string
		loc        *time.Location
		fetchCtx   context.Context
	)
	_, err := uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		if err := validateMonth(s, req.Month, uc.timeProvider.Now()); err != nil {
			return err
		}
		s.FetchGeneration++
		s.Month = req.Month
		s.Loading = true
		s.LastError = ""

		generation = s.FetchGeneration
		companyID = s.CompanyID
		loc = s.Location()
		fetchCtx = uc.inflight.Begin(ctx, s.ID, generation)
		return nil
	})
	if fetchCtx != nil {
		defer uc.inflight.Done(req.SessionID, generation)
	}
	if err != nil {
		return nil, uc.mapSessionError("begin", req, err)
	}

	// 3. Загрузка снимка без удержания мьютекса сессии
	start := time.Now()
	snapshot, fetchErr := uc.client.GetMonthAvailability(fetchCtx, companyID, req.Month, loc)
	duration := time.Since(start)

	// 4. Применяем результат, только если поколение все еще текущее.
	// Запись идет и после отключения клиента, иначе Loading останется в хранилище.
	applyCtx := context.WithoutCancel(ctx)
	session, err := uc.sessions.Update(applyCtx, req.SessionID, func(s *domain.Session) error {
		if s.FetchGeneration != generation {
			return ErrSuperseded
		}
		s.Loading = false

		switch {
		case fetchErr == nil:
			s.LastError = ""
			form.ApplyToSession(s, uc.timeProvider.Now(), form.SnapshotLoaded{Snapshot: snapshot})
		case errors.Is(fetchErr, scheduling.ErrCanceled):
			// запрос прерван клиентом: снимок и ошибка не меняются
		default:
			s.LastError = userMessage(fetchErr)
		}
		return nil
	})

	if errors.Is(err, ErrSuperseded) || (err == nil && errors.Is(fetchErr, scheduling.ErrCanceled)) {
		uc.metrics.ObserveFetch(metrics.FetchSuperseded, duration)
		uc.logger.Info("ChangeMonth: session=%s, month=%s, generation=%d superseded", req.SessionID, req.Month, generation)
		return uc.current(applyCtx, req)
	}
	if err != nil {
		return nil, uc.mapSessionError("apply", req, err)
	}

	if fetchErr != nil {
		uc.metrics.ObserveFetch(metrics.FetchError, duration)
		uc.logger.Error("ChangeMonth: session=%s, month=%s: fetch failed: %v", req.SessionID, req.Month, fetchErr)
	} else {
		uc.metrics.ObserveFetch(metrics.FetchOK, duration)
		uc.logger.Info("ChangeMonth: session=%s, month=%s: loaded %d days", req.SessionID, req.Month, len(snapshot.Days))
	}

	return &Response{
		Session: session,
		View:    form.DeriveSession(session, uc.timeProvider.Now()),
	}, nil
}

// current возвращает состояние сессии без изменений (после вытесненной загрузки)
func (uc *UseCase) current(ctx context.Context, req *Request) (*Response, error) {
	session, err := uc.sessions.Get(ctx, req.SessionID)
	if err != nil {
		return nil, uc.mapSessionError("current", req, err)
	}
	return &Response{
		Session:    session,
		View:       form.DeriveSession(session, uc.timeProvider.Now()),
		Superseded: true,
	}, nil
}

func (uc *UseCase) mapSessionError(step string, req *Request, err error) error {
	switch {
	case errors.Is(err, ErrMonthInPast):
		uc.logger.Warn("ChangeMonth: session=%s: %v", req.SessionID, err)
		return err
	case errors.Is(err, sessionService.ErrSessionNotFound):
		uc.logger.Warn("ChangeMonth: session=%s not found", req.SessionID)
		return ErrSessionNotFound
	default:
		uc.logger.Error("ChangeMonth: session=%s, step=%s: %v", req.SessionID, step, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, step, err)
	}
}

// userMessage текст ошибки загрузки для пользователя
func userMessage(err error) string {
	var apiErr *scheduling.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Не удалось загрузить доступное время. Попробуйте позже."
}
