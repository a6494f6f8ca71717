package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"transdom/config"
	"transdom/database"
	"transdom/entities/insurance"
	"transdom/entities/notifications"
	"transdom/entities/rates"
	"transdom/logger"
	"transdom/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(cfg.LogLevel)
	if cfg.Env == config.ENV_RELEASE {
		log.Warn("running in production environment")
	} else {
		log.Info("environment loaded", "env", cfg.Env)
	}

	client, err := database.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("mongodb disconnect failed", "error", err)
		}
	}()

	store := rates.NewMongoStore(client.Database(database.GetDB(cfg)))
	indexCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout())
	err = store.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		return err
	}

	queue, closeQueue, err := newQueue(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeQueue()

	hub := rates.NewHub(cfg.Server.AllowedOrigins)
	defer hub.Close()

	router := server.NewRouter(server.Deps{
		APIKey:         cfg.Auth.APIKey,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         log,
		Rates:          rates.NewHandlers(store, hub, cfg.Mongo.Timeout()),
		Insurance:      insurance.NewCalculator(cfg.Insurance),
		Notifications:  notifications.NewHandlers(queue, log),
	})

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		queue.Run(workerCtx)
	}()
	defer func() {
		stopWorkers()
		wg.Wait()
	}()

	return server.Serve(ctx, cfg.Server, router, log)
}

// newQueue picks the Redis-backed queue when REDIS_URI is set and the
// in-memory queue otherwise.
func newQueue(ctx context.Context, cfg *config.Config, log *slog.Logger) (notifications.Queue, func(), error) {
	notifier, err := newNotifier(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Redis.URI == "" {
		log.Info("notification queue in memory", "workers", cfg.Notify.Workers, "buffer", cfg.Notify.BufferSize)
		return notifications.NewMemoryQueue(notifier, cfg.Notify.Workers, cfg.Notify.BufferSize, log), func() {}, nil
	}

	rdb, err := database.ConnectRedis(ctx, cfg.Redis.URI)
	if err != nil {
		return nil, nil, err
	}
	log.Info("notification queue in redis", "key", cfg.Redis.Key, "workers", cfg.Notify.Workers)
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis close failed", "error", err)
		}
	}
	return notifications.NewRedisQueue(rdb, cfg.Redis.Key, notifier, cfg.Notify.Workers, log), closeFn, nil
}

func newNotifier(cfg *config.Config, log *slog.Logger) (*notifications.Notifier, error) {
	renderer, err := notifications.NewRenderer(cfg.Notify.FrontendURL)
	if err != nil {
		return nil, fmt.Errorf("load e-mail templates: %w", err)
	}
	return notifications.NewNotifier(cfg.SMTP, renderer, log), nil
}
