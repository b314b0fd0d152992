package infra

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/umalmyha/customer-records/internal/config"
	"github.com/umalmyha/customer-records/internal/repository"
)

// Storage is customer repository together with connection it lives on
type Storage struct {
	CustomerRps repository.CustomerRepository
	closeFn     func(context.Context) error
}

// Close releases storage connection
func (s *Storage) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// OpenStorage connects to the storage selected by driver and prepares
// indexes or schema which enforce email uniqueness
func OpenStorage(ctx context.Context, cfg config.Config) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMongo:
		client, err := Mongodb(ctx, cfg.MongoCfg)
		if err != nil {
			return nil, err
		}

		db := client.Database(cfg.MongoCfg.Database)
		if err := repository.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to create mongodb indexes - %w", err)
		}

		logrus.Infof("using mongodb storage, database %s", cfg.MongoCfg.Database)
		return &Storage{
			CustomerRps: repository.NewMongoCustomerRepository(db),
			closeFn:     client.Disconnect,
		}, nil
	case config.StoragePostgres:
		pool, err := Postgresql(ctx, cfg.PostgresCfg)
		if err != nil {
			return nil, err
		}

		if err := repository.EnsurePostgresSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to create postgres schema - %w", err)
		}

		logrus.Infof("using postgres storage, database %s", cfg.PostgresCfg.Database)
		return &Storage{
			CustomerRps: repository.NewPostgresCustomerRepository(pool),
			closeFn: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	case config.StorageMemory:
		logrus.Warn("using in-memory storage, customers will be lost on restart")
		return &Storage{CustomerRps: repository.NewMemoryCustomerRepository()}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
