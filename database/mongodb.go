package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"transdom/config"
)

const (
	MONGO_TIMEOUT            = 20 * time.Second
	COLLECTION_SHIPPING_RATE = "shipping_rates"
)

// ConnectMongo opens the process-wide client pool and verifies it with a
// ping. The caller owns the client and must Disconnect it at shutdown.
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = MONGO_TIMEOUT
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return client, nil
}

// GetDB returns the configured database name, falling back to the
// environment-named database used by earlier deployments.
func GetDB(cfg *config.Config) string {
	if cfg.Mongo.Database != "" {
		return cfg.Mongo.Database
	}

	switch cfg.Env {
	case config.ENV_RELEASE:
		return "production"
	case config.ENV_HOMOLOG:
		return "homolog"
	default:
		return "development"
	}
}
