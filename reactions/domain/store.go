package domain

import "context"

// Store é o serviço de documentos indexado por slug.
//
// Implementações podem ser Redis, Postgres, SQLite, memória, etc.
// Create deve ser atômico em relação ao slug: se o documento já existir,
// retorna ErrDuplicate em vez de gravar um segundo registro.
type Store interface {
	Exists(ctx context.Context, slug Slug) (bool, error)
	Create(ctx context.Context, rec Record) error
	// Get retorna ErrNotFound quando não há documento para o slug.
	Get(ctx context.Context, slug Slug) (Record, error)
}
