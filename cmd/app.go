package cmd

import (
	"context"
	"fmt"

	"prunderground/core/cache"
	"prunderground/core/config"
	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/core/logger"
	"prunderground/core/storage"
	"prunderground/feature/catalog"
	"prunderground/feature/exchange"
	"prunderground/feature/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the wired object graph shared by every command.
type services struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *gorm.DB
	client    *fio.Client
	cache     *cache.Cache
	catalog   *catalog.Service
	prices    *exchange.Repository
	archive   *exchange.Archive
	job       *exchange.PriceSyncJob
	inventory *inventory.Service
}

// Models lists every table the service owns.
func Models() []any {
	var models []any
	models = append(models, catalog.Models()...)
	models = append(models, exchange.Models()...)
	models = append(models, inventory.Models()...)
	return models
}

// bootstrap loads configuration and connects the database and gateway. The
// archive is only wired when storage and archiving are both enabled. Schema
// migration is left to the caller.
func bootstrap(ctx context.Context) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connection required: %w", err)
	}

	client := fio.NewClient(cfg.FIO, fio.WithLogger(logger.Component(logg, "fio")))
	c := cache.New(cfg.Cache)

	svc := &services{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		client:  client,
		cache:   c,
		catalog: catalog.NewService(db, client, c, cfg.Catalog, logg),
		prices:  exchange.NewRepository(db),
	}

	if cfg.Storage.Enabled && cfg.Exchange.Archive {
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		archive := exchange.NewArchive(store, cfg.Storage, cfg.Exchange.ArchiveRetention)
		if err := archive.Ensure(ctx); err != nil {
			logg.Warn("Snapshot archive unavailable", zap.Error(err))
		} else {
			svc.archive = archive
		}
	}

	svc.job = exchange.NewPriceSyncJob(client, svc.prices, svc.archive, logg)
	svc.inventory = inventory.NewService(inventory.NewStore(db), client, c, svc.catalog, svc.prices, cfg.Sync, logg)
	return svc, nil
}

func (s *services) migrate() error {
	return database.Migrate(s.db, Models()...)
}

func (s *services) close() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = s.logger.Sync()
}
