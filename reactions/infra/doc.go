// Package infra contém implementações concretas (infraestrutura) do
// contrato domain.Store.
//
// Exemplos:
//   - MemoryStore: mapa em memória, para testes e desenvolvimento
//   - RedisStore: um documento JSON por slug, criação com SETNX
//   - SQLStore: tabela via gorm (sqlite ou postgres) com índice único em slug
package infra
