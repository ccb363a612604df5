package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/kpatel744/auctioneer/go/internal/auction/api"
	"github.com/kpatel744/auctioneer/go/internal/auction/bidengine"
	"github.com/kpatel744/auctioneer/go/internal/auction/gateway"
	"github.com/kpatel744/auctioneer/go/internal/auction/outbox"
	"github.com/kpatel744/auctioneer/go/internal/auction/registry"
	"github.com/kpatel744/auctioneer/go/internal/auction/room"
	"github.com/kpatel744/auctioneer/go/internal/auction/session"
	"github.com/kpatel744/auctioneer/go/internal/dbconfig"
	"github.com/kpatel744/auctioneer/go/internal/players"
	"github.com/kpatel744/auctioneer/go/internal/store"
	"github.com/kpatel744/auctioneer/go/internal/store/memory"
	"github.com/kpatel744/auctioneer/go/internal/store/postgres"
)

// Services holds the wired application components.
type Services struct {
	Store    store.Store
	Rooms    *room.App
	Pool     *players.App
	Sessions *session.App
	Registry *registry.App
	Outbox   *outbox.App
	Worker   *outbox.Worker
	Gateway  *gateway.Service // nil when NATS is not configured
	API      *api.Handler

	cleanup []func()
}

// Close releases resources acquired during setup, newest first.
func (s *Services) Close() {
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// setupServices wires the dependency chain:
// store -> outbox -> room coordinator -> sessions/registry/gateway -> API.
func setupServices(ctx context.Context, cfg AppConfig, ladder bidengine.Ladder) (*Services, error) {
	services := &Services{}

	var (
		docStore   store.Store
		outboxRepo outbox.OutboxRepository
	)
	switch cfg.StoreBackend {
	case "memory":
		docStore = memory.NewStore()
		outboxRepo = outbox.NewMemoryRepository()
	case "postgres":
		dbCfg := dbconfig.NewConfigFromEnv()

		pool, err := setupPool(ctx, dbCfg)
		if err != nil {
			return nil, err
		}
		services.cleanup = append(services.cleanup, pool.Close)

		pgStore := postgres.NewStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			services.Close()
			return nil, fmt.Errorf("ensure store schema: %w", err)
		}
		docStore = pgStore

		database, err := setupDatabase(dbCfg)
		if err != nil {
			services.Close()
			return nil, err
		}
		services.cleanup = append(services.cleanup, func() { database.Close() })

		repo := outbox.NewRepository(database)
		if err := repo.EnsureSchema(ctx); err != nil {
			services.Close()
			return nil, fmt.Errorf("ensure outbox schema: %w", err)
		}
		outboxRepo = repo
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	services.Store = docStore

	var publisher outbox.EventPublisher
	if cfg.NatsURL != "" {
		jsCfg := outbox.DefaultJetStreamConfig()
		jsCfg.URL = cfg.NatsURL
		jsPublisher, err := outbox.NewJetStreamPublisher(jsCfg)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("create JetStream publisher: %w", err)
		}
		services.cleanup = append(services.cleanup, func() { jsPublisher.Close() })
		publisher = jsPublisher
	} else {
		publisher = outbox.NewLogPublisher(slog.Default())
	}

	services.Outbox = outbox.NewApp(outboxRepo)
	services.Worker = outbox.NewWorker(outboxRepo, publisher, outbox.DefaultConfig(), clockwork.NewRealClock(), slog.Default())

	services.Rooms = room.NewApp(docStore.Rooms(), docStore.Players(), services.Outbox, ladder)
	services.Pool = players.NewApp(docStore.Players())
	services.Registry = registry.NewApp(docStore.Rooms(), docStore.Players())

	var sessionStorage session.Storage
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			services.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		services.cleanup = append(services.cleanup, func() { rdb.Close() })
		sessionStorage = session.NewRedisStorage(rdb, session.DefaultSessionTTL)
	} else {
		sessionStorage = session.NewMemoryStorage()
	}
	services.Sessions = session.NewApp(sessionStorage, services.Rooms, ladder)

	if cfg.NatsURL != "" {
		provider := gateway.NewRoomStateProvider(services.Rooms, services.Pool, services.Registry, ladder)
		gwCfg := gateway.DefaultConfig()
		gwCfg.JetStreamConfig.URL = cfg.NatsURL
		gw, err := gateway.NewService(gwCfg, provider)
		if err != nil {
			services.Close()
			return nil, fmt.Errorf("create gateway: %w", err)
		}
		services.Gateway = gw
	}

	services.API = api.NewHandler(services.Rooms, services.Pool, services.Sessions, services.Registry)

	return services, nil
}
