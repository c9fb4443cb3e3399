package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"promptbox/internal/logging"
	"promptbox/internal/models"
)

// Generator is the slice of the genai SDK the client needs. *genai.Models
// satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeneratorFactory builds a Generator for an API key. The key is read at
// call time, so a generator is created per request.
type GeneratorFactory func(ctx context.Context, apiKey string) (Generator, error)

// GeminiModelOptions configures the SDK connection.
type GeminiModelOptions struct {
	// BaseURL overrides the Gemini endpoint when non-empty.
	BaseURL string
}

// NewGenaiFactory returns a factory backed by google.golang.org/genai.
func NewGenaiFactory(opts GeminiModelOptions) GeneratorFactory {
	return func(ctx context.Context, apiKey string) (Generator, error) {
		gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return gClient.Models, nil
	}
}

// Request is one generation call.
type Request struct {
	APIKey string
	Model  models.ModelConfig
	// Schema switches the call to structured JSON output when non-nil.
	Schema *genai.Schema
}

type GeminiClient struct {
	newGenerator GeneratorFactory
	logger       *zap.Logger
}

func NewGeminiClient(factory GeneratorFactory, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{newGenerator: factory, logger: logging.OrNop(logger)}
}

// CallAPI sends prompt with the request's settings and returns the response
// text. Structured responses that are valid JSON come back indented.
func (c *GeminiClient) CallAPI(ctx context.Context, prompt string, req Request) (string, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return "", ErrMissingAPIKey
	}

	requestID := uuid.NewString()
	log := c.logger.With(zap.String("request_id", requestID), zap.String("model", req.Model.ModelName))

	gen, err := c.newGenerator(ctx, req.APIKey)
	if err != nil {
		log.Error("creating generator", zap.Error(err))
		return "", normalizeError(err)
	}

	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := buildConfig(req)

	log.Debug("calling Gemini", zap.Bool("structured", req.Schema != nil))
	resp, err := gen.GenerateContent(ctx, req.Model.ModelName, contents, config)
	if err != nil {
		log.Error("Gemini API error", zap.Error(err))
		return "", normalizeError(err)
	}

	text := resp.Text()
	if req.Schema == nil {
		return text, nil
	}
	return prettyJSON(text), nil
}

func buildConfig(req Request) *genai.GenerateContentConfig {
	temperature := float32(req.Model.Temperature)
	topP := float32(req.Model.TopP)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		TopP:            &topP,
		MaxOutputTokens: int32(req.Model.MaxOutputTokens),
	}
	if req.Model.SystemPrompt != "" {
		config.SystemInstruction = genai.NewContentFromText(req.Model.SystemPrompt, genai.RoleUser)
	}
	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.Schema
	}
	return config
}

// prettyJSON indents text when it is valid JSON and returns it unchanged otherwise.
func prettyJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if !json.Valid([]byte(trimmed)) {
		return text
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(trimmed), "", "  "); err != nil {
		return text
	}
	return buf.String()
}
