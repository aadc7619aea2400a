// Package storage selects and opens the key-value driver named in the
// configuration.
package storage

import (
	"context"
	"fmt"

	"github.com/99minutos/customer-desk/internal/core/ports"
	"github.com/99minutos/customer-desk/internal/infrastructure/db/memory"
	"github.com/99minutos/customer-desk/internal/infrastructure/db/mongo"
	"github.com/99minutos/customer-desk/internal/infrastructure/db/postgres"
	"github.com/99minutos/customer-desk/internal/infrastructure/db/redis"
	"github.com/99minutos/customer-desk/internal/infrastructure/db/sqlite"
	"github.com/99minutos/customer-desk/internal/pkg/config"
)

// Backend is a KeyValueStore that can be health-checked and closed.
type Backend interface {
	ports.KeyValueStore
	Ping(ctx context.Context) error
	Close() error
}

// Open connects to the driver selected by cfg.Storage.Driver and applies the
// configured key prefix.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	var (
		b   Backend
		err error
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		b = memory.New()
	case config.DriverSQLite:
		b, err = sqlite.Open(ctx, cfg.Storage.SQLitePath)
	case config.DriverPostgres:
		b, err = postgres.New(ctx, cfg.Postgres.DSN)
	case config.DriverRedis:
		b, err = redis.Open(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	case config.DriverMongo:
		b, err = mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}
	return WithPrefix(b, cfg.Storage.KeyPrefix), nil
}

// WithPrefix namespaces every key of b. An empty prefix returns b unchanged.
func WithPrefix(b Backend, prefix string) Backend {
	if prefix == "" {
		return b
	}
	return &prefixed{Backend: b, prefix: prefix}
}

type prefixed struct {
	Backend
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.Backend.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.Backend.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.Backend.Remove(ctx, p.prefix+key)
}
