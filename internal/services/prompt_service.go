package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"promptbox/internal/llm/client"
	"promptbox/internal/logging"
	"promptbox/internal/models"
)

// SettingsReader is the part of SettingsService a prompt needs.
type SettingsReader interface {
	Snapshot() models.Settings
	GetModelConfig() models.ModelConfig
	GetStructuredOutputConfig() (*models.StructuredOutputConfig, error)
	CurrentTemplateName() string
}

type HistoryRecorder interface {
	Add(ctx context.Context, item models.HistoryItem) uint
	EnforceLimit(ctx context.Context, limit int)
	Error() string
}

type Completer interface {
	CallAPI(ctx context.Context, prompt string, req client.Request) (string, error)
}

type PromptService struct {
	settings SettingsReader
	history  HistoryRecorder
	client   Completer
	logger   *zap.Logger
}

func NewPromptService(settings SettingsReader, history HistoryRecorder, c Completer, logger *zap.Logger) *PromptService {
	return &PromptService{settings: settings, history: history, client: c, logger: logging.OrNop(logger).Named("prompt")}
}

// CallAPI sends prompt with the current settings and returns the response
// text. Nothing is recorded in history.
func (s *PromptService) CallAPI(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	cur := s.settings.Snapshot()
	if strings.TrimSpace(cur.APIKey) == "" {
		return "", client.ErrMissingAPIKey
	}

	req := client.Request{APIKey: cur.APIKey, Model: s.settings.GetModelConfig()}
	structured, err := s.settings.GetStructuredOutputConfig()
	if err != nil {
		return "", client.SchemaError(err)
	}
	if structured != nil {
		schema, err := client.ParseSchema(structured.Raw)
		if err != nil {
			return "", client.SchemaError(err)
		}
		req.Schema = schema
	}

	return s.client.CallAPI(ctx, prompt, req)
}

// Submit calls the API and records the exchange, then trims history to the
// configured maximum. A history failure does not fail the submission; it is
// reported through the history service's Error.
func (s *PromptService) Submit(ctx context.Context, prompt string) (*models.HistoryItem, error) {
	text, err := s.CallAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cur := s.settings.Snapshot()
	item := models.HistoryItem{
		Prompt:       prompt,
		Response:     text,
		ModelName:    cur.ModelName,
		TemplateName: s.settings.CurrentTemplateName(),
		Timestamp:    time.Now(),
	}
	item.ID = s.history.Add(ctx, item)
	if item.ID == 0 {
		s.logger.Warn("response not recorded", zap.String("error", s.history.Error()))
		return &item, nil
	}
	s.history.EnforceLimit(ctx, cur.MaxHistoryItems)
	return &item, nil
}
