// Package reactions é o adapter HTTP (net/http + chi) do contador de reações.
//
// Visão geral (camadas):
//
//   - domain: Record, Store e a taxonomia de erros (sem net/http)
//   - application: caso de uso Fetch (verifica, cria se faltar, lê)
//   - infra: stores concretos (memória, Redis, SQL via gorm)
//   - reactions (este pacote): handler, rotas e tradução erro -> status/JSON
//
// Fluxo de uma requisição:
//
//  1. Lê ?slug= da query string
//  2. Chama application.Service.Fetch
//  3. Responde 200 {"reactions": N}, 400 sem slug, 500 em falha do store
package reactions
