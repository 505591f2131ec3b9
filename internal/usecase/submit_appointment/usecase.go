package submit_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/integrations/scheduling"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
	"github.com/m04kA/SMC-BookingWidget/internal/usecase/change_month"
	"github.com/m04kA/SMC-BookingWidget/pkg/metrics"
)

const defaultBackendMessage = "Не удалось создать запись. Попробуйте позже."

// UseCase use case отправки записи
type UseCase struct {
	sessions     SessionManager
	client       AppointmentClient
	loader       MonthLoader
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionManager,
	client AppointmentClient,
	loader MonthLoader,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		client:       client,
		loader:       loader,
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

// Execute выполняет use case отправки записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitAppointment: session=%s", req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем предусловия и помечаем сессию как отправляющую
	var appointment *domain.AppointmentRequest
	pending, err := uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		if s.Submitting {
			return ErrSubmissionInFlight
		}
		built, err := domain.NewAppointmentRequest(s.CompanyID, s.Selection, s.Location())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIncompleteSelection, err)
		}
		if err := validateAppointment(built); err != nil {
			return err
		}

		s.Submitting = true
		s.LastError = ""
		appointment = built
		return nil
	})
	if err != nil {
		return nil, uc.mapPreconditionError(req, err)
	}

	// 3. Запись в бэкенд
	uc.logger.Info("SubmitAppointment: session=%s, company=%s, service=%d, employee=%d, at=%s",
		req.SessionID, appointment.CompanyID, appointment.ServiceID, appointment.EmployeeID, appointment.DateTime.Format("2006-01-02T15:04Z07:00"))
	createErr := uc.client.CreateAppointment(ctx, appointment)

	// 4. Снимаем флаг отправки в любом случае, даже если клиент уже отключился
	var booking *domain.BookingConfirmation
	if createErr == nil {
		booking = &domain.BookingConfirmation{
			ServiceID:  appointment.ServiceID,
			EmployeeID: appointment.EmployeeID,
			DateTime:   appointment.DateTime,
			BookedAt:   uc.timeProvider.Now().UTC(),
		}
	}
	finish := func(s *domain.Session) error {
		s.Submitting = false
		if createErr != nil {
			s.LastError = backendMessage(createErr)
			return nil
		}
		s.LastBooking = booking
		s.LastError = ""
		form.ApplyToSession(s, uc.timeProvider.Now(), form.AppointmentBooked{})
		return nil
	}

	var month domain.Month
	session, err := uc.sessions.Update(context.WithoutCancel(ctx), req.SessionID, func(s *domain.Session) error {
		// месяц мог смениться, пока шла запись
		month = s.Month
		return finish(s)
	})
	if err != nil {
		uc.logger.Error("SubmitAppointment: session=%s: failed to reset submission state: %v", req.SessionID, err)
		if createErr != nil {
			uc.metrics.ObserveSubmission(metrics.SubmitError)
			return nil, fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}
		// запись уже создана в бэкенде: отвечаем успехом по последнему известному состоянию
		uc.metrics.ObserveSubmission(metrics.SubmitOK)
		_ = finish(pending)
		return &Response{
			Session: pending,
			View:    form.DeriveSession(pending, uc.timeProvider.Now()),
			Booking: booking,
		}, nil
	}

	if createErr != nil {
		uc.metrics.ObserveSubmission(metrics.SubmitError)
		uc.logger.Error("SubmitAppointment: session=%s: backend error: %v", req.SessionID, createErr)
		return nil, &BackendError{Message: session.LastError}
	}
	uc.metrics.ObserveSubmission(metrics.SubmitOK)
	uc.logger.Info("SubmitAppointment: session=%s: appointment created", req.SessionID)

	// 5. Одна перезагрузка отображаемого месяца: занятый слот должен исчезнуть
	reloaded, err := uc.loader.Execute(ctx, &change_month.Request{SessionID: req.SessionID, Month: month})
	if err != nil {
		uc.logger.Warn("SubmitAppointment: session=%s: availability reload failed: %v", req.SessionID, err)
		return &Response{
			Session: session,
			View:    form.DeriveSession(session, uc.timeProvider.Now()),
			Booking: booking,
		}, nil
	}

	return &Response{Session: reloaded.Session, View: reloaded.View, Booking: booking}, nil
}

func (uc *UseCase) mapPreconditionError(req *Request, err error) error {
	switch {
	case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrIncompleteSelection), errors.Is(err, ErrInvalidInput):
		uc.metrics.ObserveSubmission(metrics.SubmitRejected)
		uc.logger.Warn("SubmitAppointment: session=%s rejected: %v", req.SessionID, err)
		return err
	case errors.Is(err, sessionService.ErrSessionNotFound):
		uc.logger.Warn("SubmitAppointment: session=%s not found", req.SessionID)
		return ErrSessionNotFound
	default:
		uc.logger.Error("SubmitAppointment: session=%s: %v", req.SessionID, err)
		return fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
	}
}

// backendMessage текст ошибки бэкенда для пользователя
func backendMessage(err error) string {
	var apiErr *scheduling.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return defaultBackendMessage
}
