// Package infra holds the database-backed persistence pieces.
package infra

import (
	"errors"
	"time"

	"github.com/amirasaad/greenpoints/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens a gorm session for the configured driver.
// Postgres connects to STORAGE DATABASE_URL; sqlite opens the file at
// STORAGE_PATH.
func NewDBConnection(cfg *config.App) (*gorm.DB, error) {
	var logMode logger.LogLevel
	if cfg.Env == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}
	gormCfg := &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	}

	var (
		connection *gorm.DB
		err        error
	)
	switch cfg.Storage.Driver {
	case "postgres":
		if cfg.DB == nil || cfg.DB.Url == "" {
			return nil, errors.New("DATABASE_URL is not set")
		}
		connection, err = gorm.Open(postgres.Open(cfg.DB.Url), gormCfg)
	case "sqlite":
		connection, err = gorm.Open(sqlite.Open(cfg.Storage.Path), gormCfg)
	default:
		return nil, errors.New("unsupported storage driver: " + cfg.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
