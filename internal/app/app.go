// Package app turns a configuration into a loaded catalog over the selected
// storage backend. The server and the command line share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/config"
	"github.com/rogerio-castellano/chuzone-catalog/internal/db"
	"github.com/rogerio-castellano/chuzone-catalog/internal/redissvc"
	"github.com/rogerio-castellano/chuzone-catalog/internal/repo"
)

// App owns the catalog and whatever connections back it.
type App struct {
	Catalog *catalog.Catalog
	Store   repo.KeyValueRepository

	closers []io.Closer
}

// OpenStore builds the key-value backend named by cfg.Store.Driver. The
// returned closers release its connections.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (repo.KeyValueRepository, []io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repo.NewInMemoryKeyValueRepository(), nil, nil

	case config.DriverFile:
		return repo.NewFileKeyValueRepository(cfg.File.Path), nil, nil

	case config.DriverRedis:
		svc, err := redissvc.NewRedisService(ctx, &redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo.NewRedisKeyValueRepository(svc.Rdb()), []io.Closer{svc}, nil

	case config.DriverPostgres, config.DriverMySQL, config.DriverSQLite:
		database, err := db.Connect(ctx, cfg.Driver, cfg.SQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		store, err := repo.NewSQLKeyValueRepository(database, repo.Dialect(cfg.Driver), cfg.SQL.Table)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		if err := store.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return store, []io.Closer{database}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

// Open connects the backend, builds the catalog and loads it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, recorder catalog.Recorder) (*App, error) {
	store, closers, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a := &App{Store: store, closers: closers}

	c, err := catalog.New(store, catalog.Options{
		Key:        cfg.Store.Key,
		SyncPolicy: catalog.SyncPolicy(cfg.Catalog.SyncPolicy),
		IDStrategy: catalog.IDStrategy(cfg.Catalog.IDStrategy),
		ConfirmTTL: cfg.Catalog.ConfirmTTL,
		Logger:     log,
		Recorder:   recorder,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := c.Load(ctx); err != nil {
		a.Close()
		return nil, err
	}
	a.Catalog = c

	if log != nil {
		log.Info("catalog ready", zap.String("driver", cfg.Store.Driver), zap.String("key", c.Key()))
	}
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
