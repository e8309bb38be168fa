package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tde-services/project-portal/internal/core/ports"
	"github.com/tde-services/project-portal/internal/core/service"
	"github.com/tde-services/project-portal/internal/infrastructure/config"
	"github.com/tde-services/project-portal/internal/infrastructure/db/mongo"
	"github.com/tde-services/project-portal/internal/infrastructure/db/postgres"
	"github.com/tde-services/project-portal/internal/infrastructure/db/redis"
	"github.com/tde-services/project-portal/internal/infrastructure/identity"
	"github.com/tde-services/project-portal/internal/infrastructure/realtime"
	"github.com/tde-services/project-portal/internal/infrastructure/storage"
)

// backends are the connections every command shares.
type backends struct {
	pg    *pgxpool.Pool
	mongo *mongo.DB
	redis *goredis.Client
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	return postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
}

func connectMongo(ctx context.Context, cfg *config.Config) (*mongo.DB, error) {
	return mongo.Connect(ctx, mongo.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
}

func connect(ctx context.Context, cfg *config.Config) (*backends, error) {
	pg, err := connectPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mdb, err := connectMongo(ctx, cfg)
	if err != nil {
		pg.Close()
		return nil, err
	}
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		pg.Close()
		_ = mdb.Close(ctx)
		return nil, err
	}
	return &backends{pg: pg, mongo: mdb, redis: rdb}, nil
}

func (b *backends) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = b.redis.Close()
	_ = b.mongo.Close(ctx)
	b.pg.Close()
}

// app holds the wired services of a running server.
type app struct {
	hub        *realtime.Hub
	listener   *realtime.Listener
	files      *storage.FileStore
	identity   *identity.Service
	profiles   ports.ProfileRepository
	projects   ports.ProjectService
	phases     ports.PhaseService
	tickets    ports.TicketService
	documents  ports.DocumentService
	events     ports.AdminEventService
	superadmin ports.SuperAdminService
	scopes     *service.ScopeFactory
}

func wire(cfg *config.Config, b *backends, log zerolog.Logger) (*app, error) {
	files, err := storage.New(storage.Config{
		Root:          cfg.Storage.Root,
		PublicURL:     cfg.PublicURL,
		SigningSecret: cfg.Storage.SigningSecret,
		PublicBuckets: cfg.Storage.PublicBuckets,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	hub := realtime.NewHub(cfg.RealtimeShards, log)
	rpc := postgres.NewProcedureCaller(b.pg, log)
	profiles := postgres.NewProfileRepository(b.pg)
	repos := service.ClientPortalRepos{
		Projects:  postgres.NewProjectRepository(b.pg),
		Phases:    postgres.NewPhaseRepository(b.pg),
		Documents: postgres.NewDocumentRepository(b.pg),
		Messages:  postgres.NewMessageRepository(b.pg),
		Tickets:   postgres.NewTicketRepository(b.pg),
	}
	idp := identity.NewService(postgres.NewUserRepository(b.pg), identity.Config{
		Secret:     cfg.Auth.JWTSecret,
		TokenTTL:   cfg.Auth.TokenTTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	events := service.NewAdminEventService(postgres.NewAdminEventRepository(b.pg), hub, time.Now, log)

	a := &app{
		hub:        hub,
		listener:   realtime.NewListener(b.pg, hub, log),
		files:      files,
		identity:   idp,
		profiles:   profiles,
		projects:   service.NewProjectService(repos.Projects, mongo.NewActivityRepository(b.mongo.Database()), time.Now, log),
		phases:     service.NewPhaseService(repos.Phases, log),
		tickets:    service.NewTicketService(repos.Tickets, log),
		documents:  service.NewDocumentService(repos.Documents, files, time.Now, log),
		events:     events,
		superadmin: service.NewSuperAdminService(idp, profiles, rpc, log),
	}
	a.scopes = service.NewScopeFactory(service.ScopeDeps{
		Identity: func(device ports.KeyValueStore) ports.IdentityProvider {
			return idp.NewClient(device, log)
		},
		RPC:      rpc,
		Profiles: profiles,
		Repos:    repos,
		Storage:  files,
		Realtime: hub,
		Events:   events,
		Auth: service.AuthConfig{
			BootstrapEmails: cfg.Auth.BootstrapAdmins,
			RetryDelay:      cfg.Auth.LoginRetryDelay,
		},
		TTL:        cfg.Auth.SessionTTL,
		StealthKey: cfg.Auth.StealthKey,
		Log:        log,
	})
	return a, nil
}
