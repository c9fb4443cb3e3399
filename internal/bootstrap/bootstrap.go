// Package bootstrap opens everything a PromptBox process needs from a
// config: logger, database, optional keyring and the service container.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"promptbox/internal/config"
	"promptbox/internal/database"
	"promptbox/internal/events"
	"promptbox/internal/llm/client"
	"promptbox/internal/logging"
	"promptbox/internal/repositories"
	"promptbox/internal/services"
)

// Env is an opened process environment. Close releases the database.
type Env struct {
	Config   *config.Config
	Logger   *zap.Logger
	Services *services.DbServices
	dbClose  func() error
}

// Options overrides parts of the wiring. Zero values use the live backends
// and publish change events to the debug log.
type Options struct {
	Emitter    events.Emitter
	Logger     *zap.Logger
	Generators client.GeneratorFactory
}

// Open builds an Env from cfg. Stores are not loaded yet; call
// Services.Startup once the caller's context is available.
func Open(cfg *config.Config, opts Options) (*Env, error) {
	logger := opts.Logger
	if logger == nil {
		l, err := logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return nil, err
		}
		logger = l
	}

	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	gormLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLevel = gormlogger.Info
	}
	db, err := database.Init(database.Config{
		Path:     cfg.Database.Path,
		LogLevel: gormLevel,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	emitter := opts.Emitter
	if emitter == nil {
		emitter = events.LogEmitter{Logger: logger}
	}
	svcOpts := services.Options{
		Emitter:    emitter,
		Logger:     logger,
		Generators: opts.Generators,
	}
	if svcOpts.Generators == nil {
		svcOpts.Generators = client.NewGenaiFactory(client.GeminiModelOptions{BaseURL: cfg.LLM.BaseURL})
	}
	if cfg.Secrets.Backend == "keyring" {
		ring, err := repositories.OpenKeyring(cfg.Secrets.KeyringService)
		if err != nil {
			return nil, errors.Join(err, sqlDB.Close())
		}
		svcOpts.SecretRing = ring
	}

	logger.Debug("environment opened",
		zap.String("db", cfg.Database.Path),
		zap.String("secrets", cfg.Secrets.Backend))

	return &Env{
		Config:   cfg,
		Logger:   logger,
		Services: services.NewDbServices(db, svcOpts),
		dbClose:  sqlDB.Close,
	}, nil
}

// CloseDB closes the database pool. The logger stays usable.
func (e *Env) CloseDB() error {
	if e.dbClose == nil {
		return nil
	}
	err := e.dbClose()
	e.dbClose = nil
	return err
}

// Close closes the database and flushes the logger.
func (e *Env) Close() error {
	err := e.CloseDB()
	_ = e.Logger.Sync()
	return err
}
