package services

import "errors"

var (
	ErrInvalidSetting      = errors.New("invalid setting")
	ErrInvalidOutputSchema = errors.New("output schema is not valid JSON")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrTemplateNameEmpty   = errors.New("template name is required")
	ErrEmptyPrompt         = errors.New("prompt is required")
)
