package session

import (
	"context"
	"sync"
)

// Inflight реестр незавершенных загрузок доступности по сессиям.
// У каждой сессии не больше одной активной загрузки: новая отменяет предыдущую.
type Inflight struct {
	mu      sync.Mutex
	fetches map[string]inflightFetch
}

type inflightFetch struct {
	generation uint64
	cancel     context.CancelFunc
}

// NewInflight создает пустой реестр
func NewInflight() *Inflight {
	return &Inflight{fetches: make(map[string]inflightFetch)}
}

// Begin отменяет предыдущую загрузку сессии и регистрирует новую с указанным поколением
func (f *Inflight) Begin(ctx context.Context, sessionID string, generation uint64) context.Context {
	fetchCtx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	prev, ok := f.fetches[sessionID]
	f.fetches[sessionID] = inflightFetch{generation: generation, cancel: cancel}
	f.mu.Unlock()

	if ok {
		prev.cancel()
	}
	return fetchCtx
}

// Done снимает загрузку с учета, если она все еще текущая для сессии
func (f *Inflight) Done(sessionID string, generation uint64) {
	f.mu.Lock()
	cur, ok := f.fetches[sessionID]
	if ok && cur.generation == generation {
		delete(f.fetches, sessionID)
	}
	f.mu.Unlock()

	if ok && cur.generation == generation {
		cur.cancel()
	}
}

// Cancel отменяет текущую загрузку сессии, если она есть
func (f *Inflight) Cancel(sessionID string) {
	f.mu.Lock()
	cur, ok := f.fetches[sessionID]
	delete(f.fetches, sessionID)
	f.mu.Unlock()

	if ok {
		cur.cancel()
	}
}

// Len возвращает число активных загрузок
func (f *Inflight) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}
