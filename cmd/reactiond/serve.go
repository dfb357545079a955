package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"reaction-counter/config"
	"reaction-counter/logger"
	"reaction-counter/middleware/ratelimit"
	"reaction-counter/reactions"
	"reaction-counter/reactions/application"
	"reaction-counter/reactions/domain"
)

func newServeCmd(g *globals) *cobra.Command {
	autoMigrate := true
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := g.load()
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			be, err := openBackend(ctx, cfg, log)
			if err != nil {
				return err
			}
			// roda só depois de serveUntilDone: nenhuma requisição em andamento usa o store fechado
			defer func() { _ = be.close() }()

			if autoMigrate && be.sql != nil {
				if err := be.migrate(ctx); err != nil {
					return err
				}
			}

			limiters := newLimiters(cfg)
			janitorDone := closedDone()
			if limiters != nil {
				janitorDone = limiters.StartJanitor(ctx)
			}

			srv := &http.Server{
				Handler:           buildRouter(cfg, be.store, limiters, log),
				ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
				ReadTimeout:       cfg.Server.ReadTimeout,
				WriteTimeout:      cfg.Server.WriteTimeout,
				IdleTimeout:       cfg.Server.IdleTimeout,
			}

			ln, err := net.Listen("tcp", cfg.ListenAddr)
			if err != nil {
				return err
			}

			log.Info("reactiond listening",
				"addr", ln.Addr().String(),
				"store", cfg.Store.Backend,
				"rate_enabled", cfg.RateLimit.Enabled,
				"rate_rps", cfg.RateLimit.RPS,
				"rate_burst", cfg.RateLimit.Burst,
				"trust_xff", cfg.RateLimit.TrustXFF,
				"concurrency_max", cfg.Concurrency.Max,
				"concurrency_timeout", cfg.Concurrency.AcquireTimeout,
			)

			err = serveUntilDone(ctx, srv, ln, cfg.Server.ShutdownTimeout)
			cancel()
			<-janitorDone
			if err != nil {
				return err
			}
			log.Info("reactiond stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", autoMigrate, "run SQL migrations on startup (sqlite/postgres only)")
	return cmd
}

// serveUntilDone atende em ln até ctx encerrar e só retorna depois que o
// Shutdown drenou as requisições em andamento (ou estourou o timeout).
func serveUntilDone(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.Serve(ln)
	// Serve volta com ErrServerClosed assim que o Shutdown começa, não quando termina
	cancel()
	<-shutdownDone
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newLimiters devolve nil quando o rate limit está desligado.
func newLimiters(cfg *config.Config) *ratelimit.Limiters {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.NewLimiters(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

// buildRouter traduz a config nas opções do router e monta o handler HTTP.
func buildRouter(cfg *config.Config, store domain.Store, limiters *ratelimit.Limiters, log *logger.Logger) http.Handler {
	h := reactions.NewHandler(application.Service{Store: store}, log)
	return reactions.NewRouter(h, reactions.RouterOptions{
		Log: log.With("component", "http"),
		RateLimit: ratelimit.Options{
			Limiters:   limiters,
			TrustXFF:   cfg.RateLimit.TrustXFF,
			RetryAfter: cfg.RateLimit.RetryAfter,
			Log:        log.With("component", "ratelimit"),
		},
		Concurrency: ratelimit.ConcurrencyOptions{
			Max:            cfg.Concurrency.Max,
			AcquireTimeout: cfg.Concurrency.AcquireTimeout,
		},
	})
}

func closedDone() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
