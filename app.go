package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"promptbox/internal/assets"
	"promptbox/internal/events"
	"promptbox/internal/models"
	"promptbox/internal/services"
)

// App struct
type App struct {
	ctx      context.Context
	services *services.DbServices
	emitter  *events.RuntimeEmitter
	logger   *zap.Logger
	dbClose  func() error
}

// StoreErrors carries the last storage failure of each store for the UI.
type StoreErrors struct {
	Settings string `json:"settings"`
	History  string `json:"history"`
}

// NewApp creates a new App application struct
func NewApp(svc *services.DbServices, emitter *events.RuntimeEmitter, logger *zap.Logger) *App {
	return &App{services: svc, emitter: emitter, logger: logger}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.emitter.Startup(ctx)

	if err := a.services.Startup(ctx); err != nil {
		a.logger.Error("loading stores", zap.Error(err))
		runtime.LogError(ctx, fmt.Sprintf("failed to load stores: %v", err))
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
	_ = a.logger.Sync()
}

// GetSettings returns the current settings snapshot.
func (a *App) GetSettings() models.Settings {
	return a.services.Settings.Snapshot()
}

// UpdateSettings applies a partial update in one transaction.
func (a *App) UpdateSettings(patch models.SettingsPatch) error {
	return a.services.Settings.Patch(a.ctx, patch)
}

// ReloadSettings re-reads settings and templates from storage.
func (a *App) ReloadSettings() error {
	return a.services.Settings.Load(a.ctx)
}

func (a *App) GetTemplates() []*models.Template {
	return a.services.Settings.Templates()
}

func (a *App) GetCurrentTemplateName() string {
	return a.services.Settings.CurrentTemplateName()
}

func (a *App) SaveAsTemplate(name string) *models.Template {
	return a.services.Settings.SaveAsTemplate(a.ctx, name)
}

func (a *App) LoadTemplate(id uint) bool {
	return a.services.Settings.LoadTemplate(a.ctx, id)
}

func (a *App) DeleteTemplate(id uint) bool {
	return a.services.Settings.DeleteTemplate(a.ctx, id)
}

// GetHistory returns history most recent first.
func (a *App) GetHistory() []models.HistoryItem {
	return a.services.History.Items()
}

func (a *App) RemoveHistoryItem(id uint) {
	a.services.History.Remove(a.ctx, id)
}

func (a *App) ClearHistory() {
	a.services.History.Clear(a.ctx)
}

// CallAPI sends a prompt without recording it.
func (a *App) CallAPI(prompt string) (string, error) {
	return a.services.Prompts.CallAPI(a.ctx, prompt)
}

// Submit sends a prompt and records the exchange in history.
func (a *App) Submit(prompt string) (*models.HistoryItem, error) {
	item, err := a.services.Prompts.Submit(a.ctx, prompt)
	if err != nil {
		runtime.LogWarning(a.ctx, fmt.Sprintf("prompt failed: %v", err))
		return nil, err
	}
	return item, nil
}

// GetStoreErrors returns the last storage failure of each store, if any.
func (a *App) GetStoreErrors() StoreErrors {
	return StoreErrors{
		Settings: a.services.Settings.Error(),
		History:  a.services.History.Error(),
	}
}

// GetAssetManifest describes the offline cache the UI shell should install.
func (a *App) GetAssetManifest() (*models.AssetManifest, error) {
	return assets.Manifest()
}

// StaleCaches returns the cache names the UI shell should delete.
func (a *App) StaleCaches(names []string) ([]string, error) {
	m, err := assets.Manifest()
	if err != nil {
		return nil, err
	}
	return assets.StaleCaches(m.CacheName, names), nil
}

// ActivateUpdate tells a waiting offline cache to take over immediately.
func (a *App) ActivateUpdate() {
	a.emitter.Emit(a.ctx, events.New(events.TopicActivateUpdate, "skip-waiting"))
}
