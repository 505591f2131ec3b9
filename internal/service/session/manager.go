package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moby/locker"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWidget/internal/infra/storage/session"
)

// RealTimeProvider реализация TimeProvider через системные часы
type RealTimeProvider struct{}

// Now возвращает текущее время
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Manager управляет жизненным циклом сессий.
// Все изменения одной сессии выполняются последовательно.
type Manager struct {
	repo   Repository
	locks  *locker.Locker
	clock  TimeProvider
	logger Logger
}

// NewManager создает новый экземпляр менеджера сессий
func NewManager(repo Repository, clock TimeProvider, logger Logger) *Manager {
	if clock == nil {
		clock = RealTimeProvider{}
	}
	return &Manager{
		repo:   repo,
		locks:  locker.New(),
		clock:  clock,
		logger: logger,
	}
}

// Create сохраняет новую сессию
func (m *Manager) Create(ctx context.Context, s *domain.Session) error {
	now := m.clock.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	if err := m.repo.Save(ctx, s); err != nil {
		m.logger.Error("Create: repository error for session=%s: %v", s.ID, err)
		return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	m.logger.Info("Create: session=%s created for company=%s", s.ID, s.CompanyID)
	return nil
}

// Get возвращает сессию по ID
func (m *Manager) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		m.logger.Error("Get: repository error for session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return s, nil
}

// Update выполняет read-modify-write сессии под мьютексом этой сессии.
// Если fn вернула ошибку, изменения не сохраняются и ошибка возвращается как есть.
func (m *Manager) Update(ctx context.Context, id string, fn func(s *domain.Session) error) (*domain.Session, error) {
	m.locks.Lock(id)
	defer m.unlock(id)

	s, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	s.UpdatedAt = m.clock.Now().UTC()
	if err := m.repo.Save(ctx, s); err != nil {
		m.logger.Error("Update: repository error for session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	return s, nil
}

// Delete удаляет сессию
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.locks.Lock(id)
	defer m.unlock(id)

	if err := m.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		m.logger.Error("Delete: repository error for session=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	m.logger.Info("Delete: session=%s deleted", id)
	return nil
}

func (m *Manager) unlock(id string) {
	if err := m.locks.Unlock(id); err != nil {
		m.logger.Error("unlock: session=%s: %v", id, err)
	}
}
