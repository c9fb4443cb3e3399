package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"promptbox/internal/events"
	"promptbox/internal/logging"
	"promptbox/internal/models"
	"promptbox/internal/repositories"
)

// SettingsService owns the in-memory settings snapshot and the template list.
// Storage failures are logged, recorded in Error and reported through the
// boolean or error result; they never panic.
type SettingsService struct {
	settings  repositories.SettingRepository
	templates repositories.TemplateRepository
	emitter   events.Emitter
	logger    *zap.Logger
	validate  *validator.Validate

	mu           sync.RWMutex
	current      models.Settings
	templateList []*models.Template
	templateName string
	lastErr      string
}

func NewSettingsService(
	settings repositories.SettingRepository,
	templates repositories.TemplateRepository,
	emitter events.Emitter,
	logger *zap.Logger,
) *SettingsService {
	if emitter == nil {
		emitter = events.Nop()
	}
	return &SettingsService{
		settings:  settings,
		templates: templates,
		emitter:   emitter,
		logger:    logging.OrNop(logger).Named("settings"),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		current:   models.DefaultSettings(),
	}
}

// Load replaces the snapshot with what storage holds. Keys that are missing
// or undecodable get their default, and the defaults are written back in a
// single batch. Stored values are never overwritten.
func (s *SettingsService) Load(ctx context.Context) error {
	stored, err := s.settings.List(ctx)
	if err != nil {
		return s.fail("load settings", err)
	}

	next := models.DefaultSettings()
	present := make(map[string]bool, len(stored))
	for _, row := range stored {
		if err := decodeSetting(&next, row.Key, row.Value); err != nil {
			if !errors.Is(err, errUnknownKey) {
				s.logger.Warn("ignoring undecodable setting", zap.String("key", row.Key), zap.Error(err))
			}
			continue
		}
		present[row.Key] = true
	}

	var missing []string
	for _, key := range models.SettingKeys {
		if !present[key] {
			missing = append(missing, key)
		}
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	if len(missing) > 0 {
		rows, err := encodeSettings(next, missing)
		if err != nil {
			return s.fail("encode default settings", err)
		}
		if err := s.settings.BulkPut(ctx, rows); err != nil {
			return s.fail("persist default settings", err)
		}
		s.logger.Debug("backfilled default settings", zap.Strings("keys", missing))
	}

	if err := s.refreshTemplates(ctx); err != nil {
		return err
	}

	s.clearError()
	s.emitter.Emit(ctx, events.New(events.TopicSettings, "loaded"))
	return nil
}

// Patch validates p, persists every field it sets in one transaction and
// only then applies it to memory.
func (s *SettingsService) Patch(ctx context.Context, p models.SettingsPatch) error {
	if err := s.validate.Struct(p); err != nil {
		return s.fail("validate settings", fmt.Errorf("%w: %v", ErrInvalidSetting, err))
	}

	next := s.Snapshot()
	keys := applyPatch(&next, p)
	if len(keys) == 0 {
		return nil
	}

	rows, err := encodeSettings(next, keys)
	if err != nil {
		return s.fail("encode settings", err)
	}
	if len(rows) == 1 {
		err = s.settings.Put(ctx, &rows[0])
	} else {
		err = s.settings.BulkPut(ctx, rows)
	}
	if err != nil {
		return s.fail("persist settings", err)
	}

	s.mu.Lock()
	applyPatch(&s.current, p)
	if p.CurrentTemplateID != nil {
		s.templateName = resolveTemplateName(s.templateList, s.current.CurrentTemplateID)
	}
	s.lastErr = ""
	s.mu.Unlock()

	evt := events.New(events.TopicSettings, "updated")
	if len(keys) == 1 {
		evt.Key = keys[0]
	}
	s.emitter.Emit(ctx, evt)
	return nil
}

// SetValue parses raw for key and applies it as a single-key patch.
func (s *SettingsService) SetValue(ctx context.Context, key, raw string) error {
	p, err := parseSettingValue(key, raw)
	if err != nil {
		return s.fail("parse setting", err)
	}
	return s.Patch(ctx, p)
}

func (s *SettingsService) set(ctx context.Context, p models.SettingsPatch) bool {
	return s.Patch(ctx, p) == nil
}

func (s *SettingsService) SetAPIKey(ctx context.Context, v string) bool {
	return s.set(ctx, models.SettingsPatch{APIKey: &v})
}

func (s *SettingsService) SetModelName(ctx context.Context, v string) bool {
	return s.set(ctx, models.SettingsPatch{ModelName: &v})
}

func (s *SettingsService) SetSystemPrompt(ctx context.Context, v string) bool {
	return s.set(ctx, models.SettingsPatch{SystemPrompt: &v})
}

func (s *SettingsService) SetTemperature(ctx context.Context, v float64) bool {
	return s.set(ctx, models.SettingsPatch{Temperature: &v})
}

func (s *SettingsService) SetTopP(ctx context.Context, v float64) bool {
	return s.set(ctx, models.SettingsPatch{TopP: &v})
}

func (s *SettingsService) SetMaxOutputTokens(ctx context.Context, v int) bool {
	return s.set(ctx, models.SettingsPatch{MaxOutputTokens: &v})
}

func (s *SettingsService) SetTheme(ctx context.Context, v string) bool {
	return s.set(ctx, models.SettingsPatch{Theme: &v})
}

func (s *SettingsService) SetMaxHistoryItems(ctx context.Context, v int) bool {
	return s.set(ctx, models.SettingsPatch{MaxHistoryItems: &v})
}

func (s *SettingsService) SetStructuredOutput(ctx context.Context, v bool) bool {
	return s.set(ctx, models.SettingsPatch{StructuredOutput: &v})
}

func (s *SettingsService) SetOutputSchema(ctx context.Context, v string) bool {
	return s.set(ctx, models.SettingsPatch{OutputSchema: &v})
}

func (s *SettingsService) SetCurrentTemplateID(ctx context.Context, v uint) bool {
	return s.set(ctx, models.SettingsPatch{CurrentTemplateID: &v})
}

// Snapshot returns a copy of the current settings.
func (s *SettingsService) Snapshot() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Values returns the snapshot as stored rows, one per key in SettingKeys order.
func (s *SettingsService) Values() []models.Setting {
	rows, err := encodeSettings(s.Snapshot(), models.SettingKeys)
	if err != nil {
		s.logger.Error("encode settings", zap.Error(err))
		return nil
	}
	return rows
}

func (s *SettingsService) GetModelConfig() models.ModelConfig {
	cur := s.Snapshot()
	return models.ModelConfig{
		ModelName:       cur.ModelName,
		SystemPrompt:    cur.SystemPrompt,
		Temperature:     cur.Temperature,
		TopP:            cur.TopP,
		MaxOutputTokens: cur.MaxOutputTokens,
	}
}

// GetStructuredOutputConfig returns nil, nil when structured output is off.
// When it is on, the schema text must decode as a JSON object.
func (s *SettingsService) GetStructuredOutputConfig() (*models.StructuredOutputConfig, error) {
	cur := s.Snapshot()
	if !cur.StructuredOutput {
		return nil, nil
	}
	var schema map[string]any
	if err := json.Unmarshal([]byte(cur.OutputSchema), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutputSchema, err)
	}
	if schema == nil {
		return nil, fmt.Errorf("%w: schema is null", ErrInvalidOutputSchema)
	}
	return &models.StructuredOutputConfig{Schema: schema, Raw: cur.OutputSchema}, nil
}

// Error returns the message of the most recent storage failure, or "" once
// a later operation has succeeded.
func (s *SettingsService) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *SettingsService) fail(op string, err error) error {
	err = fmt.Errorf("service: %s: %w", op, err)
	s.logger.Error(op+" failed", zap.Error(err))
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
	return err
}

func (s *SettingsService) clearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}
