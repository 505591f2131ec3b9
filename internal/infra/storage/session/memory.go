package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingWidget/internal/domain"
)

// MemoryRepository хранит сессии в памяти процесса.
// Значения хранятся сериализованными, поэтому вызывающий код не может изменить их в обход Save.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	ttl   time.Duration
	now   Clock
}

type memoryItem struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryRepository создает хранилище в памяти; истекшие записи удаляются лениво и через DeleteExpired
func NewMemoryRepository(ttl time.Duration, now Clock) *MemoryRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryRepository{
		items: make(map[string]memoryItem),
		ttl:   ttl,
		now:   now,
	}
}

// Get возвращает сессию по ID
func (r *MemoryRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if !r.now().Before(item.expiresAt) {
		r.mu.Lock()
		if cur, ok := r.items[id]; ok && !r.now().Before(cur.expiresAt) {
			delete(r.items, id)
		}
		r.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	return decode(id, item.payload)
}

// Save сохраняет сессию и продлевает срок ее жизни
func (r *MemoryRepository) Save(ctx context.Context, s *domain.Session) error {
	payload, err := encode(s)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.items[s.ID] = memoryItem{payload: payload, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()
	return nil
}

// Delete удаляет сессию
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.items, id)
	return nil
}

// DeleteExpired удаляет все истекшие сессии и возвращает их количество
func (r *MemoryRepository) DeleteExpired(ctx context.Context) (int64, error) {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for id, item := range r.items {
		if !now.Before(item.expiresAt) {
			delete(r.items, id)
			removed++
		}
	}
	return removed, nil
}
