package domain

import (
	"time"

	"github.com/google/uuid"
)

// Slug identifica um item de conteúdo (ex: um post do blog).
type Slug string

// InitialReactions é o valor gravado na primeira vez que um slug é visto.
const InitialReactions = 1

// Record é o documento de contagem de reações de um slug.
//
// Reactions nunca é incrementado por este serviço; o valor só é criado
// (com InitialReactions) e lido.
type Record struct {
	ID        string    `json:"id"`
	Slug      Slug      `json:"slug"`
	Reactions int       `json:"reactions"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord monta o documento inicial de um slug ainda não visto.
func NewRecord(slug Slug, now time.Time) Record {
	return Record{
		ID:        uuid.NewString(),
		Slug:      slug,
		Reactions: InitialReactions,
		CreatedAt: now.UTC(),
	}
}
