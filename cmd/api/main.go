package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/intellitrack/tracking-simulator/internal/api"
	"github.com/intellitrack/tracking-simulator/internal/api/handler"
	"github.com/intellitrack/tracking-simulator/internal/core/ports"
	"github.com/intellitrack/tracking-simulator/internal/core/service"
	"github.com/intellitrack/tracking-simulator/internal/core/simulation"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/background"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/config"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/memory"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/mongo"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/redis"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/db/seed"
	"github.com/intellitrack/tracking-simulator/internal/infrastructure/queue"
	"github.com/intellitrack/tracking-simulator/internal/pkg/dotenv"
	"github.com/intellitrack/tracking-simulator/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := dotenv.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to load environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "tracking-simulator",
	})

	if err := run(ctx, cfg, lg); err != nil {
		lg.Fatal().Err(err).Msg("server exited with error")
	}
	lg.Info().Msg("server exited successfully")
}

// stores holds the selected port implementations and their readiness checks.
type stores struct {
	shipments     ports.ShipmentRepository
	events        ports.EventRepository
	notifications ports.NotificationRepository
	locker        ports.Locker
	watchlist     ports.Watchlist
	checks        map[string]handler.Check
	closers       []func(context.Context) error
}

func (s *stores) close(ctx context.Context) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		_ = s.closers[i](ctx)
	}
}

func openStores(ctx context.Context, cfg *config.Config, lg zerolog.Logger) (*stores, error) {
	s := &stores{
		shipments:     memory.NewShipmentStore(),
		events:        memory.NewEventLog(),
		notifications: memory.NewNotificationStore(),
		locker:        memory.NewLocker(),
		watchlist:     memory.NewWatchlist(),
		checks:        map[string]handler.Check{},
	}

	if cfg.StoreDriver == config.StoreMongo {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, client.Disconnect)

		shipments := mongo.NewShipmentRepository(db)
		if err := shipments.EnsureIndexes(ctx); err != nil {
			s.close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			s.close(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		s.shipments = shipments
		s.events = mongo.NewEventRepository(db)
		s.notifications = mongo.NewNotificationRepository(db)
		s.checks["mongodb"] = mongoCheck(client)
		lg.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	}

	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			s.close(ctx)
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return rdb.Close() })

		s.locker = redis.NewLocker(rdb, cfg.Redis.LockTTL)
		s.watchlist = redis.NewWatchlist(rdb)
		s.checks["redis"] = redisCheck(rdb)
		lg.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	return s, nil
}

func mongoCheck(client *mongodriver.Client) handler.Check {
	return func(ctx context.Context) error { return client.Ping(ctx, nil) }
}

func redisCheck(rdb *goredis.Client) handler.Check {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}

func run(ctx context.Context, cfg *config.Config, lg zerolog.Logger) error {
	st, err := openStores(ctx, cfg, lg)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	if cfg.SeedMockData {
		n, err := seed.Load(ctx, st.shipments)
		if err != nil {
			return err
		}
		lg.Info().Int("loaded", n).Msg("demo shipments seeded")
	}

	seedValue := cfg.Simulation.JitterSeed
	if seedValue == 0 {
		seedValue = uint64(time.Now().UnixNano())
	}
	engine := simulation.NewEngine(simulation.WithJitter(simulation.NewRandomJitter(seedValue)))

	svc := service.NewShipmentService(service.Deps{
		Shipments:     st.shipments,
		Events:        st.events,
		Notifications: st.notifications,
		Locker:        st.locker,
		Watchlist:     st.watchlist,
		Engine:        engine,
	}, logger.Component("service"))

	// Workers outlive the request context until the HTTP server is drained.
	workCtx, cancelWork := context.WithCancel(context.Background())
	defer cancelWork()

	dispatcher := queue.NewDispatcher(cfg.Simulation.Workers, svc, logger.Component("dispatcher"))
	dispatcher.Start(workCtx)

	ticker, err := background.Start(workCtx, logger.Component("simulation"),
		background.NewSimulationTask(st.watchlist, dispatcher, cfg.Simulation.Interval))
	if err != nil {
		return err
	}

	e := api.NewRouter(api.RouterDeps{
		Service: svc,
		Cities:  engine.Cities(),
		Checks:  st.checks,
		Logger:  lg,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		lg.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Dur("tick", cfg.Simulation.Interval).
			Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		lg.Info().Msg("shutdown signal received, gracefully shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("server forced to shutdown")
	}

	cancelWork()
	ticker.Wait()
	dispatcher.Wait()
	return nil
}
