package infra

import (
	"context"
	"sync"
	"time"
)

// MemoryKV é uma implementação em memória do domain.ExpiringKV, com
// expiração por entrada e limpeza periódica.
//
// Útil para testes e desenvolvimento sem redis. O SetIfAbsent é atômico
// sob o mutex, então o guard funciona também aqui.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]memEntry

	now          func() time.Time
	cleanupEvery time.Duration
}

type memEntry struct {
	value string
	// zero = sem expiração
	expiresAt time.Time
}

type MemoryKVOption func(*MemoryKV)

// WithMemoryClock injeta o relógio (testes com janelas comprimidas).
func WithMemoryClock(now func() time.Time) MemoryKVOption {
	return func(s *MemoryKV) { s.now = now }
}

func WithMemoryCleanupEvery(d time.Duration) MemoryKVOption {
	return func(s *MemoryKV) { s.cleanupEvery = d }
}

func NewMemoryKV(opts ...MemoryKVOption) *MemoryKV {
	s := &MemoryKV{
		entries:      make(map[string]memEntry),
		now:          time.Now,
		cleanupEvery: 1 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implementa domain.ExpiringKV. Entrada expirada é removida na leitura.
func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if s.expired(ent, now) {
		delete(s.entries, key)
		return "", false, nil
	}
	return ent.value, true, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = s.entry(value, ttl)
	return nil
}

func (s *MemoryKV) SetIfAbsent(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok && !s.expired(ent, now) {
		return false, nil
	}
	s.entries[key] = s.entry(value, ttl)
	return true, nil
}

func (s *MemoryKV) entry(value string, ttl time.Duration) memEntry {
	ent := memEntry{value: value}
	if ttl > 0 {
		ent.expiresAt = s.now().Add(ttl)
	}
	return ent
}

func (s *MemoryKV) expired(ent memEntry, now time.Time) bool {
	return !ent.expiresAt.IsZero() && !ent.expiresAt.After(now)
}

// Cleanup remove entradas expiradas.
func (s *MemoryKV) Cleanup() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if s.expired(ent, now) {
			delete(s.entries, k)
		}
	}
}

// StartJanitor inicia uma goroutine que limpa entradas expiradas
// periodicamente. Pare cancelando o contexto.
func (s *MemoryKV) StartJanitor(ctx DoneContext) {
	if s.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// DoneContext é o mínimo necessário para aceitar context.Context sem
// acoplar a assinatura do janitor.
type DoneContext interface {
	Done() <-chan struct{}
}
