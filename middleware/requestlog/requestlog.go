// Package requestlog registra uma linha de access log por requisição.
package requestlog

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"reaction-counter/logger"
)

// Middleware loga método, caminho, status, bytes e duração.
// Respostas 5xx saem em warn; o resto em info.
func Middleware(log *logger.Logger) func(next http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			kv := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			}
			if status >= http.StatusInternalServerError {
				log.Warn("request", kv...)
				return
			}
			log.Info("request", kv...)
		})
	}
}
