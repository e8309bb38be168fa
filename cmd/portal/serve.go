package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tde-services/project-portal/internal/api"
	"github.com/tde-services/project-portal/internal/api/handler"
	"github.com/tde-services/project-portal/internal/api/middleware"
	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/infrastructure/config"
	"github.com/tde-services/project-portal/internal/infrastructure/db/redis"
	"github.com/tde-services/project-portal/internal/infrastructure/memstore"
	"github.com/tde-services/project-portal/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the realtime change feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), cfg())
		},
	}
}

func serve(parent context.Context, cfg *config.Config) error {
	log := logger.Get()
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.close()

	a, err := wire(cfg, b, log)
	if err != nil {
		return err
	}

	tabs := memstore.NewTabs(cfg.TabTTL)
	scopes := middleware.NewScopeRegistry(middleware.RegistryConfig{
		Builder:  a.scopes,
		TabStore: func(key string) ports.KeyValueStore { return tabs.For(key) },
		DropTab:  tabs.Drop,
		DeviceStore: func(deviceID string) ports.KeyValueStore {
			return redis.NewDeviceStore(b.redis, deviceID, cfg.Redis.DurableTTL)
		},
		TTL: cfg.TabTTL,
	})
	defer scopes.Close()

	e := api.NewRouter(api.Services{
		Projects:   a.projects,
		Phases:     a.phases,
		Tickets:    a.tickets,
		Documents:  a.documents,
		Events:     a.events,
		SuperAdmin: a.superadmin,
		Objects:    a.files,
		Scopes:     scopes,
		Readiness: map[string]handler.Pinger{
			"postgres": b.pg.Ping,
			"mongodb":  b.mongo.Ping,
			"redis":    redis.Ping(b.redis),
		},
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.hub.Start(ctx)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.listener.Run(gctx) })
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
