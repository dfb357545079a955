package infra

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reaction-counter/reactions/application"
	"reaction-counter/reactions/domain"
)

func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := OpenSQL(DialectSQLite, filepath.Join(t.TempDir(), "reactions.db"))
	require.NoError(t, err)

	s := NewSQLStore(db)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) domain.Store { return newSQLiteStore(t) })
}

func TestSQLStore_MigrateIsIdempotent(t *testing.T) {
	s := newSQLiteStore(t)
	require.NoError(t, s.Migrate(context.Background()))
	assert.True(t, s.db.Migrator().HasIndex(&reactionRow{}, "reaction_count"))
}

func TestOpenSQL_RejectsUnknownDialect(t *testing.T) {
	_, err := OpenSQL("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported sql dialect")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: reactions.slug")))
	assert.True(t, isUniqueViolation(errors.New(`duplicate key value violates unique constraint "reaction_count" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueViolation(errors.New("no such table: reactions")))
}

func TestOpenSQL_SQLiteUsesSingleConnection(t *testing.T) {
	db, err := OpenSQL(DialectSQLite, filepath.Join(t.TempDir(), "reactions.db"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestSQLStore_SlugColumnHasNoLengthLimit(t *testing.T) {
	s := newSQLiteStore(t)

	cols, err := s.db.Migrator().ColumnTypes(&reactionRow{})
	require.NoError(t, err)
	found := false
	for _, col := range cols {
		if col.Name() != "slug" {
			continue
		}
		found = true
		assert.Equal(t, "text", strings.ToLower(col.DatabaseTypeName()))
	}
	assert.True(t, found, "slug column not found")
}

func TestSQLStore_LongSlugRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	svc := application.Service{Store: s}
	long := domain.Slug(strings.Repeat("a-very-long-post-title-", 200))

	res, err := svc.Fetch(context.Background(), long)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, 1, res.Record.Reactions)
	assert.Equal(t, long, res.Record.Slug)
}

// Várias goroutines disputando vários slugs novos no store do jeito que o
// reactiond o abre: nenhuma falha de lock e um único registro por slug.
func TestSQLStore_ConcurrentServiceFetches(t *testing.T) {
	s := newSQLiteStore(t)
	svc := application.Service{Store: s}
	ctx := context.Background()

	const (
		workers = 16
		slugs   = 20
	)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < slugs; i++ {
				res, err := svc.Fetch(ctx, domain.Slug(fmt.Sprintf("post-%d", i)))
				if err == nil && res.Record.Reactions != 1 {
					err = fmt.Errorf("post-%d: reactions=%d", i, res.Record.Reactions)
				}
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()
	require.Empty(t, errs)

	var n int64
	require.NoError(t, s.db.Model(&reactionRow{}).Count(&n).Error)
	assert.EqualValues(t, slugs, n)
}
