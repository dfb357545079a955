package reactions

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"reaction-counter/logger"
	"reaction-counter/middleware/ratelimit"
	"reaction-counter/middleware/requestlog"
)

const (
	PathReactions = "/api/reactions"
	// PathLegacy é o caminho que o site já chama (antiga função serverless).
	PathLegacy = "/.netlify/functions/fetch_reactions"
	PathHealth = "/health"
)

// RouterOptions agrupa o logger e os limites aplicados ao endpoint de reações.
type RouterOptions struct {
	Log         *logger.Logger
	RateLimit   ratelimit.Options
	Concurrency ratelimit.ConcurrencyOptions
}

// NewRouter monta as rotas: health check livre e o endpoint de reações
// atrás do limite de concorrência e do rate limit.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(requestlog.Middleware(opts.Log))

	r.Get(PathHealth, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.ConcurrencyMiddleware(opts.Concurrency))
		r.Use(ratelimit.Middleware(opts.RateLimit))
		r.Method(http.MethodGet, PathReactions, h)
		r.Method(http.MethodGet, PathLegacy, h)
	})

	return r
}
