package services

import (
	"context"
	"errors"

	"github.com/99designs/keyring"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"promptbox/internal/events"
	"promptbox/internal/llm/client"
	"promptbox/internal/logging"
	"promptbox/internal/repositories"
)

// Options configures NewDbServices. Zero values fall back to a no-op emitter,
// a no-op logger, database-backed secrets and the live Gemini backend.
type Options struct {
	Emitter events.Emitter
	Logger  *zap.Logger
	// SecretRing, when set, stores the API key instead of the settings table.
	SecretRing keyring.Keyring
	Generators client.GeneratorFactory
}

// DbServices aggregates all domain services backed by the database.
type DbServices struct {
	Settings *SettingsService
	History  *HistoryService
	Prompts  *PromptService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB, opts Options) *DbServices {
	logger := logging.OrNop(opts.Logger)
	emitter := opts.Emitter
	if emitter == nil {
		emitter = events.Nop()
	}
	generators := opts.Generators
	if generators == nil {
		generators = client.NewGenaiFactory(client.GeminiModelOptions{})
	}

	settingRepo := repositories.NewSettingRepository(db)
	if opts.SecretRing != nil {
		settingRepo = repositories.NewKeyringSettingRepository(settingRepo, opts.SecretRing)
	}
	templateRepo := repositories.NewTemplateRepository(db)
	historyRepo := repositories.NewHistoryRepository(db)

	settings := NewSettingsService(settingRepo, templateRepo, emitter, logger)
	history := NewHistoryService(historyRepo, emitter, logger)
	prompts := NewPromptService(settings, history, client.NewGeminiClient(generators, logger), logger)

	return &DbServices{
		Settings: settings,
		History:  history,
		Prompts:  prompts,
	}
}

// Startup loads settings, templates and history into memory.
func (s *DbServices) Startup(ctx context.Context) error {
	return errors.Join(s.Settings.Load(ctx), s.History.Fetch(ctx))
}
