// Package domain define os tipos e contratos do contador de reações.
//
// Este pacote não depende de net/http nem de nenhum banco concreto.
// A camada application usa apenas estes contratos, o que permite testar
// a regra "cria se não existe, depois lê" com um Store falso.
package domain
