package infra

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reaction-counter/reactions/domain"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// reactionRow é a linha da tabela `reactions`. O índice único
// `reaction_count` em slug é o que garante um documento por slug.
// slug é text: o serviço não impõe tamanho máximo ao slug.
type reactionRow struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Slug      string    `gorm:"type:text;uniqueIndex:reaction_count;not null"`
	Reactions int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (reactionRow) TableName() string { return "reactions" }

func rowFromRecord(rec domain.Record) reactionRow {
	return reactionRow{
		ID:        rec.ID,
		Slug:      string(rec.Slug),
		Reactions: rec.Reactions,
		CreatedAt: rec.CreatedAt,
	}
}

func (r reactionRow) record() domain.Record {
	return domain.Record{
		ID:        r.ID,
		Slug:      domain.Slug(r.Slug),
		Reactions: r.Reactions,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

// OpenSQL abre a conexão gorm para o dialeto pedido.
//
// TranslateError fica ligado para que violações do índice único voltem
// como gorm.ErrDuplicatedKey em qualquer dialeto.
// No sqlite o pool fica com uma única conexão: o arquivo aceita um escritor
// por vez e conexões paralelas esbarram em "database is locked".
func OpenSQL(dialect, dsn string) (*gorm.DB, error) {
	name := strings.ToLower(strings.TrimSpace(dialect))
	var dial gorm.Dialector
	switch name {
	case DialectSQLite:
		dial = sqlite.Open(dsn)
	case DialectPostgres:
		dial = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}
	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if name == DialectSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", dialect, err)
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

// SQLStore implementa domain.Store sobre uma tabela relacional via gorm.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Migrate cria a tabela e o índice único, se ainda não existirem.
func (s *SQLStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&reactionRow{}); err != nil {
		return fmt.Errorf("migrate reactions: %w", err)
	}
	return nil
}

func (s *SQLStore) Exists(ctx context.Context, slug domain.Slug) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&reactionRow{}).
		Where("slug = ?", string(slug)).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *SQLStore) Create(ctx context.Context, rec domain.Record) error {
	row := rowFromRecord(rec)
	err := s.db.WithContext(ctx).Create(&row).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// isUniqueViolation reconhece a violação do índice único mesmo quando o
// driver não traduz o erro para gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

func (s *SQLStore) Get(ctx context.Context, slug domain.Slug) (domain.Record, error) {
	var row reactionRow
	err := s.db.WithContext(ctx).
		Where("slug = ?", string(slug)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Record{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Record{}, err
	}
	return row.record(), nil
}

// Close fecha o pool de conexões por trás do gorm.
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
