package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/moby/locker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
	sessionRepo "github.com/m04kA/SMC-BookingWidget/internal/infra/storage/session"
	"github.com/m04kA/SMC-BookingWidget/pkg/logger"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type failingRepo struct{ err error }

func (r failingRepo) Get(ctx context.Context, id string) (*domain.Session, error) { return nil, r.err }
func (r failingRepo) Save(ctx context.Context, s *domain.Session) error           { return r.err }
func (r failingRepo) Delete(ctx context.Context, id string) error                 { return r.err }

func newManager() *Manager {
	clock := fixedClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	repo := sessionRepo.NewMemoryRepository(time.Hour, clock.Now)
	return NewManager(repo, clock, logger.NewNop())
}

func TestManager_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := newManager()

	require.NoError(t, m.Create(ctx, &domain.Session{ID: "s1", CompanyID: "acme"}))

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "acme", got.CompanyID)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), got.CreatedAt)

	_, err = m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_UpdateDiscardsChangesOnError(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	require.NoError(t, m.Create(ctx, &domain.Session{ID: "s1"}))

	errStop := errors.New("stop")
	_, err := m.Update(ctx, "s1", func(s *domain.Session) error {
		s.LastError = "should not persist"
		return errStop
	})
	assert.ErrorIs(t, err, errStop)

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, got.LastError)
}

func TestManager_UpdateSerializesPerSession(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	require.NoError(t, m.Create(ctx, &domain.Session{ID: "s1"}))

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := m.Update(ctx, "s1", func(s *domain.Session) error {
				s.FetchGeneration++
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, uint64(workers), got.FetchGeneration)
	assert.ErrorIs(t, m.locks.Unlock("s1"), locker.ErrNoSuchLock)
}

func TestManager_UpdateDoesNotBlockOtherSessions(t *testing.T) {
	ctx := context.Background()
	m := newManager()
	require.NoError(t, m.Create(ctx, &domain.Session{ID: "s1"}))
	require.NoError(t, m.Create(ctx, &domain.Session{ID: "s2"}))

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Update(ctx, "s1", func(*domain.Session) error {
			close(entered)
			<-release
			return nil
		})
		assert.NoError(t, err)
	}()
	<-entered

	_, err := m.Update(ctx, "s2", func(s *domain.Session) error {
		s.FetchGeneration++
		return nil
	})
	require.NoError(t, err)

	close(release)
	<-done
}

func TestManager_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	m := NewManager(failingRepo{err: errors.New("redis down")}, nil, logger.NewNop())

	_, err := m.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrInternal)

	err = m.Create(ctx, &domain.Session{ID: "s1"})
	assert.ErrorIs(t, err, ErrInternal)

	m = NewManager(failingRepo{err: sessionRepo.ErrSessionNotFound}, nil, logger.NewNop())
	_, err = m.Update(ctx, "s1", func(*domain.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Delete(ctx, "s1"), ErrSessionNotFound)
}

func TestInflight_BeginCancelsPrevious(t *testing.T) {
	f := NewInflight()

	first := f.Begin(context.Background(), "s1", 1)
	second := f.Begin(context.Background(), "s1", 2)

	assert.ErrorIs(t, first.Err(), context.Canceled)
	assert.NoError(t, second.Err())

	other := f.Begin(context.Background(), "s2", 1)
	assert.NoError(t, second.Err())

	// завершение устаревшего поколения не трогает текущую загрузку
	f.Done("s1", 1)
	assert.NoError(t, second.Err())
	assert.Equal(t, 2, f.Len())

	f.Done("s1", 2)
	assert.ErrorIs(t, second.Err(), context.Canceled)
	assert.Equal(t, 1, f.Len())

	f.Cancel("s2")
	assert.ErrorIs(t, other.Err(), context.Canceled)
	assert.Equal(t, 0, f.Len())
}
