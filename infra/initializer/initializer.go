// Package initializer wires configuration, logging and the storage
// backend into the dependency set the entrypoints consume.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/greenpoints/infra"
	infraeventbus "github.com/amirasaad/greenpoints/infra/eventbus"
	"github.com/amirasaad/greenpoints/infra/filestore"
	infrarepo "github.com/amirasaad/greenpoints/infra/repository"
	"github.com/amirasaad/greenpoints/pkg/config"
	"github.com/amirasaad/greenpoints/pkg/eventbus"
	"github.com/amirasaad/greenpoints/pkg/repository"
)

// Deps is everything the entrypoints need to build services.
type Deps struct {
	Config *config.App
	Logger *slog.Logger
	UoW    repository.UnitOfWork
	Bus    eventbus.EventBus
}

// Initialize loads configuration, installs the logger and opens the
// configured storage backend.
func Initialize() (*Deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := SetupLogger(cfg.Log)

	uow, err := openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	bus := infraeventbus.NewWithMemory(logger)
	infraeventbus.RegisterLogging(bus, logger)

	return &Deps{
		Config: cfg,
		Logger: logger,
		UoW:    uow,
		Bus:    bus,
	}, nil
}

func openStorage(cfg *config.App, logger *slog.Logger) (repository.UnitOfWork, error) {
	switch cfg.Storage.Driver {
	case "file":
		logger.Info("using file storage", "path", cfg.Storage.Path)
		return filestore.New(cfg.Storage.Path), nil
	case "sqlite", "postgres":
		db, err := infra.NewDBConnection(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := infrarepo.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		logger.Info("using database storage", "driver", cfg.Storage.Driver)
		return infrarepo.NewUoW(db), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
	}
}
