package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"reaction-counter/logger"
)

// Mensagens das respostas de rejeição.
const (
	MsgTooManyRequests = "Too many requests"
	MsgServerBusy      = "Server busy"
)

type Options struct {
	Limiters     *Limiters
	TrustXFF     bool
	RejectStatus int
	RetryAfter   time.Duration
	Log          *logger.Logger
}

// Middleware aplica o token bucket por cliente. Sem Limiters, é um no-op.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.Limiters == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	// Retry-After é em segundos inteiros; nunca anuncia 0
	retrySecs := int(opts.RetryAfter.Seconds())
	if retrySecs < 1 {
		retrySecs = 1
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r, opts.TrustXFF)
			if !opts.Limiters.Allow(key) {
				opts.Log.Debug("rate limited", "client", key, "path", r.URL.Path)
				w.Header().Set("Retry-After", strconv.Itoa(retrySecs))
				reject(w, opts.RejectStatus, MsgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
}

// ConcurrencyMiddleware limita quantas requisições rodam ao mesmo tempo.
//   - AcquireTimeout <= 0: espera por vaga até o contexto da requisição acabar
//   - AcquireTimeout > 0: desiste depois do timeout
//
// Max <= 0 desliga o limite.
func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	sem := make(chan struct{}, opts.Max)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var timeout <-chan time.Time
			if opts.AcquireTimeout > 0 {
				t := time.NewTimer(opts.AcquireTimeout)
				defer t.Stop()
				timeout = t.C
			}

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				reject(w, opts.RejectStatus, MsgServerBusy)
				return
			case <-timeout:
				reject(w, opts.RejectStatus, MsgServerBusy)
				return
			}
			defer func() { <-sem }()

			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}
