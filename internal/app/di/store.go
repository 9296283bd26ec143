// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"quote_backend/internal/app/config"
	authadapters "quote_backend/internal/feature/auth/adapters"
	authusecase "quote_backend/internal/feature/auth/usecase"
	quoteadapters "quote_backend/internal/feature/quotes/adapters"
	quoteusecase "quote_backend/internal/feature/quotes/usecase"
	"quote_backend/internal/platform/cache"
	"quote_backend/internal/platform/db"
	platformmongo "quote_backend/internal/platform/mongo"
)

// Stores bundles the repositories of one storage backend.
type Stores struct {
	Driver db.Driver
	Users  authusecase.UserRepository
	Quotes quoteusecase.QuoteRepository
	// Close releases the underlying connection pool.
	Close func(ctx context.Context) error
}

// NewStores opens the backend selected by cfg.URL and builds its repositories.
func NewStores(ctx context.Context, cfg config.DatabaseConfig) (*Stores, error) {
	driver, dsn, err := db.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if driver == db.DriverMongo {
		return newMongoStores(ctx, dsn, cfg)
	}

	gdb, err := db.OpenSQL(ctx, driver, dsn, cfg.ConnectTimeout, cfg.RunMigrations)
	if err != nil {
		return nil, err
	}
	return &Stores{
		Driver: driver,
		Users:  authadapters.NewUserGorm(gdb),
		Quotes: quoteadapters.NewQuoteGorm(gdb),
		Close: func(context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func newMongoStores(ctx context.Context, uri string, cfg config.DatabaseConfig) (*Stores, error) {
	client, err := platformmongo.NewMongoClient(ctx, uri, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	mdb := client.Database(cfg.MongoDBName)

	users := authadapters.NewUserMongo(mdb)
	if cfg.RunMigrations {
		if err := users.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to create user indexes: %w", err)
		}
	}

	return &Stores{
		Driver: db.DriverMongo,
		Users:  users,
		Quotes: quoteadapters.NewQuoteMongo(mdb),
		Close:  client.Disconnect,
	}, nil
}

// NewQuoteRepository wraps inner with the Redis list cache.
// With a nil rdb the decorator passes every call straight through.
func NewQuoteRepository(rdb *redis.Client, ttl time.Duration, inner quoteusecase.QuoteRepository) quoteusecase.QuoteRepository {
	if rdb == nil {
		slog.Info("quote cache disabled")
	}
	return cache.NewCachingQuoteRepository(rdb, ttl, inner, "quotes")
}
