package infra

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reaction-counter/reactions/domain"
)

// runStoreContract exercita o comportamento que todo domain.Store precisa ter.
// newStore deve devolver um store vazio a cada chamada.
func runStoreContract(t *testing.T, newStore func(t *testing.T) domain.Store) {
	t.Helper()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("absent slug", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		ok, err := s.Exists(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = s.Get(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("create then read", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		rec := domain.NewRecord("my-first-post", now)

		require.NoError(t, s.Create(ctx, rec))

		ok, err := s.Exists(ctx, "my-first-post")
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := s.Get(ctx, "my-first-post")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, rec.Slug, got.Slug)
		assert.Equal(t, 1, got.Reactions)
		assert.True(t, rec.CreatedAt.Equal(got.CreatedAt), "created_at %s != %s", got.CreatedAt, rec.CreatedAt)
	})

	t.Run("long slug", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		long := domain.Slug(strings.Repeat("x", 4096))

		require.NoError(t, s.Create(ctx, domain.NewRecord(long, now)))
		got, err := s.Get(ctx, long)
		require.NoError(t, err)
		assert.Equal(t, long, got.Slug)
	})

	t.Run("second create is a duplicate", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first := domain.NewRecord("dup", now)
		require.NoError(t, s.Create(ctx, first))
		err := s.Create(ctx, domain.NewRecord("dup", now))
		assert.ErrorIs(t, err, domain.ErrDuplicate)

		got, err := s.Get(ctx, "dup")
		require.NoError(t, err)
		assert.Equal(t, first.ID, got.ID)
	})

	t.Run("concurrent creates leave one record", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const workers = 16
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			created int
			others  []error
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := s.Create(ctx, domain.NewRecord("hot", now))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case errors.Is(err, domain.ErrDuplicate):
				default:
					others = append(others, err)
				}
			}()
		}
		wg.Wait()

		assert.Empty(t, others)
		assert.Equal(t, 1, created)
	})
}
