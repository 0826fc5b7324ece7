package infra

import (
	"context"
	"sync"
	"time"

	"url-to-post/postcreate/domain"
)

// MemoryPostStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento sem Postgres.
type MemoryPostStore struct {
	mu    sync.Mutex
	seq   int64
	posts map[int64]domain.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[int64]domain.Post)}
}

func (s *MemoryPostStore) Create(_ context.Context, d domain.Draft) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	p := domain.Post{
		ID:        s.seq,
		Title:     d.Title,
		Content:   d.Content,
		Tags:      append([]string(nil), d.Tags...),
		CreatedAt: time.Now(),
	}
	s.posts[p.ID] = p
	return p, nil
}

func (s *MemoryPostStore) Get(id int64) (domain.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	return p, ok
}

func (s *MemoryPostStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.posts)
}
