// Command server runs the image studio HTTP API.
//
// @title        Image Studio API
// @version      1.0
// @description  Prompt-to-image generation with a personal and community gallery.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/api"
	"github.com/pixelforge/image-studio/internal/core/ports"
	"github.com/pixelforge/image-studio/internal/core/service"
	"github.com/pixelforge/image-studio/internal/infrastructure/config"
	"github.com/pixelforge/image-studio/internal/infrastructure/db/memory"
	"github.com/pixelforge/image-studio/internal/infrastructure/db/mongo"
	"github.com/pixelforge/image-studio/internal/infrastructure/db/redis"
	"github.com/pixelforge/image-studio/internal/infrastructure/http/handlers"
	"github.com/pixelforge/image-studio/internal/infrastructure/imagegen"
	"github.com/pixelforge/image-studio/internal/infrastructure/queue"
	"github.com/pixelforge/image-studio/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "image-studio",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

type stores struct {
	images   ports.ImageRepository
	users    ports.UserRepository
	activity ports.ActivityRepository
	idem     ports.IdempotencyStore
	checks   map[string]handlers.CheckFunc
	closers  []func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, c := range st.closers {
			if err := c(closeCtx); err != nil {
				log.Warn().Err(err).Msg("close store")
			}
		}
	}()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	activity := service.NewActivityService(st.activity, logger.For("activity"))
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activity, logger.For("dispatcher"))
	dispatcher.Start(workerCtx)
	defer func() {
		stopWorkers()
		dispatcher.Wait()
	}()

	generator := imagegen.NewClient(imagegen.Config{
		URL:        cfg.ImageGen.URL,
		APIKey:     cfg.ImageGen.APIKey,
		CustomerID: cfg.ImageGen.CustomerID,
		Model:      cfg.ImageGen.Model,
		Timeout:    cfg.ImageGen.Timeout,
	}, logger.For("imagegen"))

	e := api.NewRouter(api.Deps{
		Generation:  service.NewGenerationService(generator, logger.For("generation")),
		Images:      service.NewImageService(st.images, st.idem, dispatcher, logger.For("images")),
		Users:       service.NewUserService(st.users, dispatcher, logger.For("users")),
		Activity:    activity,
		Checks:      st.checks,
		CORSOrigins: cfg.Origins(),
		Log:         log,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreBackend).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	st := &stores{checks: map[string]handlers.CheckFunc{}}

	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repos, err := mongo.NewRepositories(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		st.images, st.users, st.activity = repos.Images, repos.Users, repos.Activity
		st.checks["mongodb"] = handlers.MongoCheck(db)
		st.closers = append(st.closers, client.Disconnect)
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongo store")
	default:
		st.images = memory.NewImageRepository()
		st.users = memory.NewUserRepository()
		st.activity = memory.NewActivityRepository(0)
		log.Info().Msg("using in-memory store")
	}

	st.idem = memory.NewIdempotencyStore(cfg.Redis.IdempotencyTTL)
	if cfg.Redis.Enabled {
		idem, err := redis.Open(ctx, redis.Config{
			Addr:           cfg.Redis.Addr,
			Password:       cfg.Redis.Password,
			DB:             cfg.Redis.DB,
			CommandTimeout: cfg.Redis.CommandTimeout,
			KeyTTL:         cfg.Redis.IdempotencyTTL,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, idempotency keys kept in memory")
		} else {
			st.idem = idem
			st.checks["redis"] = idem.Ping
			st.closers = append(st.closers, idem.Close)
		}
	}

	return st, nil
}
