// Package ratelimit protege o endpoint público de reações com dois
// middlewares net/http:
//
//   - Middleware: token bucket por cliente (IP ou primeiro X-Forwarded-For),
//     responde 429 com Retry-After quando o cliente estoura o limite
//   - ConcurrencyMiddleware: teto de requisições simultâneas, responde 503
//     quando não há vaga dentro do AcquireTimeout
//
// As respostas de rejeição usam o mesmo formato JSON do endpoint:
// {"message": "..."}.
package ratelimit
