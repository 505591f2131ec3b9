package update_selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	"github.com/m04kA/SMC-BookingWidget/internal/service/availability"
	"github.com/m04kA/SMC-BookingWidget/internal/service/form"
	sessionService "github.com/m04kA/SMC-BookingWidget/internal/service/session"
)

// UseCase use case изменения выбора пользователя.
// Изменения применяются в фиксированном порядке: текст, услуга, сотрудник, дата, время.
type UseCase struct {
	sessions     SessionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessions SessionManager, logger Logger) *UseCase {
	return &UseCase{
		sessions:     sessions,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case изменения выбора
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateSelection: session=%s", req.SessionID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateSelection: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Применяем изменения атомарно: при ошибке сессия не меняется
	session, err := uc.sessions.Update(ctx, req.SessionID, func(s *domain.Session) error {
		return uc.apply(s, req)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidSelection), errors.Is(err, ErrInvalidInput):
			uc.logger.Warn("UpdateSelection: session=%s rejected: %v", req.SessionID, err)
			return nil, err
		case errors.Is(err, sessionService.ErrSessionNotFound):
			uc.logger.Warn("UpdateSelection: session=%s not found", req.SessionID)
			return nil, ErrSessionNotFound
		default:
			uc.logger.Error("UpdateSelection: session=%s: %v", req.SessionID, err)
			return nil, fmt.Errorf("%w: failed to update session: %v", ErrInternal, err)
		}
	}

	view := form.DeriveSession(session, now)
	uc.logger.Info("UpdateSelection: session=%s, date=%s, slot=%s, missing=%v",
		session.ID, session.Selection.Date, session.Selection.Slot, view.MissingFields)

	return &Response{Session: session, View: view}, nil
}

func (uc *UseCase) apply(s *domain.Session, req *Request) error {
	now := uc.timeProvider.Now()
	today := form.Today(s, now)
	state := form.StateOf(s)
	ix := availability.NewIndex(state.Snapshot)

	// 1. Текстовые поля
	if req.Name != nil {
		state = form.Reduce(state, form.SetName{Value: *req.Name}, today)
	}
	if req.Phone != nil {
		state = form.Reduce(state, form.SetPhone{Value: *req.Phone}, today)
	}
	if req.Note != nil {
		state = form.Reduce(state, form.SetNote{Value: *req.Note}, today)
	}

	// 2. Услуга
	if req.ServiceID != nil {
		if id := req.ServiceID.Value; id != nil && state.Snapshot != nil && !ix.HasService(*id) {
			return fmt.Errorf("%w: service %d", ErrInvalidSelection, *id)
		}
		state = form.Reduce(state, form.SelectService{ServiceID: req.ServiceID.Value}, today)
	}

	// 3. Сотрудник
	if req.EmployeeID != nil {
		if id := req.EmployeeID.Value; id != nil && state.Snapshot != nil && !ix.HasEmployee(*id) {
			return fmt.Errorf("%w: employee %d", ErrInvalidSelection, *id)
		}
		state = form.Reduce(state, form.SelectEmployee{EmployeeID: req.EmployeeID.Value}, today)
	}

	// 4. Дата: только из предложенных формой
	if req.Date != nil {
		date, err := parseDate(*req.Date, s.Location())
		if err != nil {
			return err
		}
		if !date.IsZero() && !form.Derive(state, today).OffersDate(date) {
			return fmt.Errorf("%w: date %s", ErrInvalidSelection, date)
		}
		state = form.Reduce(state, form.SelectDate{Date: date}, today)
	}

	// 5. Время: только из слотов выбранного сотрудника на выбранную дату
	if req.Slot != nil {
		slot, err := parseSlot(*req.Slot)
		if err != nil {
			return err
		}
		if !slot.IsZero() && !form.Derive(state, today).OffersSlot(slot) {
			return fmt.Errorf("%w: slot %s", ErrInvalidSelection, slot)
		}
		state = form.Reduce(state, form.SelectSlot{Slot: slot}, today)
	}

	form.Store(s, state)
	s.LastBooking = nil
	return nil
}
