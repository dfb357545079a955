// Package application contém o caso de uso do contador de reações.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Service.Fetch(ctx, slug) garante que o documento existe e devolve
// a contagem atual.
package application
