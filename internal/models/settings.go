package models

import "time"

// Setting is a single persisted configuration value. Value holds the
// JSON encoding of a scalar so every key shares one table.
type Setting struct {
	Key       string `gorm:"primaryKey;size:64" json:"key"`
	Value     string `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time
}

// Setting keys.
const (
	KeyAPIKey            = "apiKey"
	KeyModelName         = "modelName"
	KeySystemPrompt      = "systemPrompt"
	KeyTemperature       = "temperature"
	KeyTopP              = "topP"
	KeyMaxOutputTokens   = "maxOutputTokens"
	KeyTheme             = "theme"
	KeyMaxHistoryItems   = "maxHistoryItems"
	KeyStructuredOutput  = "structuredOutput"
	KeyOutputSchema      = "outputSchema"
	KeyCurrentTemplateID = "currentTemplateId"
)

// SettingKeys lists every known key in backfill order.
var SettingKeys = []string{
	KeyAPIKey,
	KeyModelName,
	KeySystemPrompt,
	KeyTemperature,
	KeyTopP,
	KeyMaxOutputTokens,
	KeyTheme,
	KeyMaxHistoryItems,
	KeyStructuredOutput,
	KeyOutputSchema,
	KeyCurrentTemplateID,
}

// Settings is the in-memory snapshot of every setting.
type Settings struct {
	APIKey            string  `json:"apiKey"`
	ModelName         string  `json:"modelName" validate:"required"`
	SystemPrompt      string  `json:"systemPrompt"`
	Temperature       float64 `json:"temperature" validate:"gte=0,lte=2"`
	TopP              float64 `json:"topP" validate:"gte=0,lte=1"`
	MaxOutputTokens   int     `json:"maxOutputTokens" validate:"gt=0"`
	Theme             string  `json:"theme" validate:"oneof=light dark system"`
	MaxHistoryItems   int     `json:"maxHistoryItems" validate:"gt=0"`
	StructuredOutput  bool    `json:"structuredOutput"`
	OutputSchema      string  `json:"outputSchema"`
	CurrentTemplateID uint    `json:"currentTemplateId"`
}

// DefaultSettings returns the values backfilled for keys missing from storage.
func DefaultSettings() Settings {
	return Settings{
		APIKey:            "",
		ModelName:         "gemini-1.5-flash",
		SystemPrompt:      "",
		Temperature:       0.9,
		TopP:              1,
		MaxOutputTokens:   2048,
		Theme:             "light",
		MaxHistoryItems:   50,
		StructuredOutput:  false,
		OutputSchema:      "",
		CurrentTemplateID: 0,
	}
}

// SettingsPatch is a partial update; nil fields are left untouched.
type SettingsPatch struct {
	APIKey            *string  `json:"apiKey,omitempty"`
	ModelName         *string  `json:"modelName,omitempty" validate:"omitnil,min=1"`
	SystemPrompt      *string  `json:"systemPrompt,omitempty"`
	Temperature       *float64 `json:"temperature,omitempty" validate:"omitnil,gte=0,lte=2"`
	TopP              *float64 `json:"topP,omitempty" validate:"omitnil,gte=0,lte=1"`
	MaxOutputTokens   *int     `json:"maxOutputTokens,omitempty" validate:"omitnil,gt=0"`
	Theme             *string  `json:"theme,omitempty" validate:"omitnil,oneof=light dark system"`
	MaxHistoryItems   *int     `json:"maxHistoryItems,omitempty" validate:"omitnil,gt=0"`
	StructuredOutput  *bool    `json:"structuredOutput,omitempty"`
	OutputSchema      *string  `json:"outputSchema,omitempty"`
	CurrentTemplateID *uint    `json:"currentTemplateId,omitempty"`
}

// ModelConfig is the sampling subset sent with a generation request.
type ModelConfig struct {
	ModelName       string  `json:"modelName"`
	SystemPrompt    string  `json:"systemPrompt"`
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// StructuredOutputConfig carries the parsed response schema. Schema is the
// decoded JSON document; Raw is the text it was parsed from.
type StructuredOutputConfig struct {
	Schema map[string]any `json:"schema"`
	Raw    string         `json:"-"`
}
