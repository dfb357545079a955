package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reaction-counter/reactions/domain"

	"github.com/redis/go-redis/v9"
)

// RedisStore guarda um documento JSON por slug em `<prefix>:<slug>`.
//
// Create usa SETNX, então dois chamadores concorrentes para o mesmo slug
// nunca gravam dois documentos: o perdedor recebe domain.ErrDuplicate.
// Os documentos não expiram.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
}

type RedisStoreOption func(*RedisStore)

func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if p := strings.Trim(prefix, ": "); p != "" {
			s.prefix = p
		}
	}
}

func NewRedisStore(rdb redis.Cmdable, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		rdb:    rdb,
		prefix: "reactions",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(slug domain.Slug) string {
	return s.prefix + ":" + string(slug)
}

func (s *RedisStore) Exists(ctx context.Context, slug domain.Slug) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(slug)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) Create(ctx context.Context, rec domain.Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, s.key(rec.Slug), raw, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrDuplicate
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, slug domain.Slug) (domain.Record, error) {
	raw, err := s.rdb.Get(ctx, s.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Record{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, err
	}
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Record{}, fmt.Errorf("decode record %q: %w", s.key(slug), err)
	}
	return rec, nil
}
