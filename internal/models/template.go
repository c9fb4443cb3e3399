package models

import "time"

// TemplateConfig is the snapshot of generation settings stored in a template.
type TemplateConfig struct {
	ModelName        string  `gorm:"size:255;not null" json:"modelName"`
	SystemPrompt     string  `gorm:"type:text" json:"systemPrompt"`
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	StructuredOutput bool    `json:"structuredOutput"`
	OutputSchema     string  `gorm:"type:text" json:"outputSchema"`
}

type Template struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Config    TemplateConfig `gorm:"embedded;embeddedPrefix:config_" json:"config"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ConfigFromSettings captures the template-relevant part of a settings snapshot.
func ConfigFromSettings(s Settings) TemplateConfig {
	return TemplateConfig{
		ModelName:        s.ModelName,
		SystemPrompt:     s.SystemPrompt,
		Temperature:      s.Temperature,
		TopP:             s.TopP,
		MaxOutputTokens:  s.MaxOutputTokens,
		StructuredOutput: s.StructuredOutput,
		OutputSchema:     s.OutputSchema,
	}
}
