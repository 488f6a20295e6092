package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rogerio-castellano/chuzone-catalog/internal/app"
	api "github.com/rogerio-castellano/chuzone-catalog/internal/http"
	"github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/chuzone-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/chuzone-catalog/internal/metrics"
)

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog page, the JSON API and /metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	m := metrics.New()
	a, err := app.Open(ctx, c.cfg, c.log, m)
	if err != nil {
		return err
	}
	defer a.Close()

	srv, err := handlers.NewServer(a.Catalog, handlers.AppInfo{
		Name:        c.cfg.App.Name,
		Version:     c.cfg.App.Version,
		Environment: c.cfg.App.Environment,
	}, c.log)
	if err != nil {
		return err
	}
	limiter := rl.New(c.cfg.RateLimit.RPS, c.cfg.RateLimit.Burst)

	httpServer := &http.Server{
		Addr: c.cfg.Server.Addr,
		Handler: api.NewRouter(api.RouterDeps{
			Server:  srv,
			Metrics: m,
			Limiter: limiter,
			Logger:  c.log,
		}),
		ReadTimeout:  c.cfg.Server.ReadTimeout,
		WriteTimeout: c.cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.log.Info("server running", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.Server.ShutdownTimeout)
		defer cancel()
		c.log.Info("shutting down server")
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		limiter.StartVisitorCleanupLoop(gctx, time.Minute, 5*time.Minute)
		return nil
	})
	return g.Wait()
}
