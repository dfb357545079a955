package infra

import (
	"context"
	"sync"

	"reaction-counter/reactions/domain"
)

// MemoryStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não persiste nada e não é indicada para produção.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[domain.Slug]domain.Record
}

type MemoryStoreOption func(*MemoryStore)

// WithSeed pré-carrega documentos (ex: contagens já existentes).
func WithSeed(recs ...domain.Record) MemoryStoreOption {
	return func(s *MemoryStore) {
		for _, rec := range recs {
			s.docs[rec.Slug] = rec
		}
	}
}

func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{docs: make(map[domain.Slug]domain.Record)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Exists(ctx context.Context, slug domain.Slug) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[slug]
	return ok, nil
}

func (s *MemoryStore) Create(ctx context.Context, rec domain.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[rec.Slug]; ok {
		return domain.ErrDuplicate
	}
	s.docs[rec.Slug] = rec
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, slug domain.Slug) (domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return domain.Record{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.docs[slug]
	if !ok {
		return domain.Record{}, domain.ErrNotFound
	}
	return rec, nil
}

// Len devolve quantos documentos existem.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
