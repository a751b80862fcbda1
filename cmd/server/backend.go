package main

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository/memrepo"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/storage"
	"gorm.io/gorm"
)

var inMemory bool

// openRepositories connects to PostgreSQL and migrates, or returns an empty
// in-memory store. db is nil in memory mode.
func openRepositories(cfg *config.Config) (repository.Repositories, *gorm.DB, error) {
	if inMemory {
		return memrepo.New().Repositories(), nil, nil
	}

	db, err := database.Open(cfg.DSN())
	if err != nil {
		return repository.Repositories{}, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return repository.Repositories{}, nil, err
	}
	return repository.NewGorm(db), db, nil
}

func openStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageLocal:
		return storage.NewLocal(cfg.UploadDir), nil
	case config.StorageMinIO:
		return storage.NewMinIO(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
