package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter indica que o slug não veio na requisição.
	ErrMissingParameter = errors.New("missing parameter: slug")
	// ErrNotFound indica que não existe documento para o slug.
	ErrNotFound = errors.New("reaction record not found")
	// ErrDuplicate indica que o Store recusou criar um segundo documento
	// para o mesmo slug.
	ErrDuplicate = errors.New("reaction record already exists")
)

// StoreFault embrulha qualquer falha vinda do Store (rede, auth, índice).
//
// Não é recuperada localmente: o adapter HTTP traduz para 500.
type StoreFault struct {
	Op   string
	Slug Slug
	Err  error
}

func (f *StoreFault) Error() string {
	return fmt.Sprintf("store %s %q: %v", f.Op, string(f.Slug), f.Err)
}

func (f *StoreFault) Unwrap() error { return f.Err }

// IsStoreFault informa se err (ou algo que ele embrulha) é um StoreFault.
func IsStoreFault(err error) bool {
	var f *StoreFault
	return errors.As(err, &f)
}
