package application

import (
	"context"
	"errors"
	"time"

	"reaction-counter/reactions/domain"
)

// Service concentra a regra "verifica, cria se faltar, lê".
//
// Ele não sabe nada sobre HTTP (query string/status), apenas retorna o
// resultado ou um erro do domínio.
type Service struct {
	Store domain.Store
	// Now permite fixar o relógio nos testes. Se nil, usa time.Now.
	Now func() time.Time
}

// Result é o que o Fetch observou para um slug.
type Result struct {
	Record domain.Record
	// Created é true quando esta chamada gravou o documento.
	Created bool
}

// Fetch executa, em sequência: Exists, Create (só se não existir) e Get.
//
// Um Create que perde a corrida para outra chamada concorrente volta como
// domain.ErrDuplicate e é tratado como "já existe".
// Qualquer outra falha do Store volta como *domain.StoreFault; não há retry.
func (s Service) Fetch(ctx context.Context, slug domain.Slug) (Result, error) {
	if slug == "" {
		return Result{}, domain.ErrMissingParameter
	}
	if s.Store == nil {
		return Result{}, &domain.StoreFault{Op: "exists", Slug: slug, Err: errors.New("store not configured")}
	}

	exists, err := s.Store.Exists(ctx, slug)
	if err != nil {
		return Result{}, &domain.StoreFault{Op: "exists", Slug: slug, Err: err}
	}

	created := false
	if !exists {
		err := s.Store.Create(ctx, domain.NewRecord(slug, s.now()))
		switch {
		case err == nil:
			created = true
		case errors.Is(err, domain.ErrDuplicate):
			// outro chamador criou entre o Exists e o Create
		default:
			return Result{}, &domain.StoreFault{Op: "create", Slug: slug, Err: err}
		}
	}

	rec, err := s.Store.Get(ctx, slug)
	if err != nil {
		return Result{}, &domain.StoreFault{Op: "get", Slug: slug, Err: err}
	}
	return Result{Record: rec, Created: created}, nil
}

func (s Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
