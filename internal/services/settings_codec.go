package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"promptbox/internal/models"
)

var errUnknownKey = errors.New("unknown setting key")

// settingTarget returns a pointer to the field backing key.
func settingTarget(s *models.Settings, key string) (any, error) {
	switch key {
	case models.KeyAPIKey:
		return &s.APIKey, nil
	case models.KeyModelName:
		return &s.ModelName, nil
	case models.KeySystemPrompt:
		return &s.SystemPrompt, nil
	case models.KeyTemperature:
		return &s.Temperature, nil
	case models.KeyTopP:
		return &s.TopP, nil
	case models.KeyMaxOutputTokens:
		return &s.MaxOutputTokens, nil
	case models.KeyTheme:
		return &s.Theme, nil
	case models.KeyMaxHistoryItems:
		return &s.MaxHistoryItems, nil
	case models.KeyStructuredOutput:
		return &s.StructuredOutput, nil
	case models.KeyOutputSchema:
		return &s.OutputSchema, nil
	case models.KeyCurrentTemplateID:
		return &s.CurrentTemplateID, nil
	}
	return nil, fmt.Errorf("%w: %s", errUnknownKey, key)
}

// decodeSetting applies a stored JSON value to the matching field. The field
// is left untouched when the value does not decode.
func decodeSetting(s *models.Settings, key, raw string) error {
	scratch := *s
	target, err := settingTarget(&scratch, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return fmt.Errorf("decode setting %s: %w", key, err)
	}
	*s = scratch
	return nil
}

func encodeSetting(s models.Settings, key string) (models.Setting, error) {
	target, err := settingTarget(&s, key)
	if err != nil {
		return models.Setting{}, err
	}
	data, err := json.Marshal(target)
	if err != nil {
		return models.Setting{}, fmt.Errorf("encode setting %s: %w", key, err)
	}
	return models.Setting{Key: key, Value: string(data)}, nil
}

func encodeSettings(s models.Settings, keys []string) ([]models.Setting, error) {
	rows := make([]models.Setting, 0, len(keys))
	for _, key := range keys {
		row, err := encodeSetting(s, key)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// applyPatch copies every non-nil patch field into s and returns the keys it touched.
func applyPatch(s *models.Settings, p models.SettingsPatch) []string {
	var keys []string
	if p.APIKey != nil {
		s.APIKey = *p.APIKey
		keys = append(keys, models.KeyAPIKey)
	}
	if p.ModelName != nil {
		s.ModelName = *p.ModelName
		keys = append(keys, models.KeyModelName)
	}
	if p.SystemPrompt != nil {
		s.SystemPrompt = *p.SystemPrompt
		keys = append(keys, models.KeySystemPrompt)
	}
	if p.Temperature != nil {
		s.Temperature = *p.Temperature
		keys = append(keys, models.KeyTemperature)
	}
	if p.TopP != nil {
		s.TopP = *p.TopP
		keys = append(keys, models.KeyTopP)
	}
	if p.MaxOutputTokens != nil {
		s.MaxOutputTokens = *p.MaxOutputTokens
		keys = append(keys, models.KeyMaxOutputTokens)
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
		keys = append(keys, models.KeyTheme)
	}
	if p.MaxHistoryItems != nil {
		s.MaxHistoryItems = *p.MaxHistoryItems
		keys = append(keys, models.KeyMaxHistoryItems)
	}
	if p.StructuredOutput != nil {
		s.StructuredOutput = *p.StructuredOutput
		keys = append(keys, models.KeyStructuredOutput)
	}
	if p.OutputSchema != nil {
		s.OutputSchema = *p.OutputSchema
		keys = append(keys, models.KeyOutputSchema)
	}
	if p.CurrentTemplateID != nil {
		s.CurrentTemplateID = *p.CurrentTemplateID
		keys = append(keys, models.KeyCurrentTemplateID)
	}
	return keys
}

// parseSettingValue builds a single-key patch from command-line text. String
// settings take the text verbatim; every other type is decoded as JSON.
func parseSettingValue(key, raw string) (models.SettingsPatch, error) {
	var s models.Settings
	target, err := settingTarget(&s, key)
	if err != nil {
		return models.SettingsPatch{}, err
	}
	if str, ok := target.(*string); ok {
		*str = raw
	} else if err := json.Unmarshal([]byte(raw), target); err != nil {
		return models.SettingsPatch{}, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
	}

	var p models.SettingsPatch
	switch key {
	case models.KeyAPIKey:
		p.APIKey = &s.APIKey
	case models.KeyModelName:
		p.ModelName = &s.ModelName
	case models.KeySystemPrompt:
		p.SystemPrompt = &s.SystemPrompt
	case models.KeyTemperature:
		p.Temperature = &s.Temperature
	case models.KeyTopP:
		p.TopP = &s.TopP
	case models.KeyMaxOutputTokens:
		p.MaxOutputTokens = &s.MaxOutputTokens
	case models.KeyTheme:
		p.Theme = &s.Theme
	case models.KeyMaxHistoryItems:
		p.MaxHistoryItems = &s.MaxHistoryItems
	case models.KeyStructuredOutput:
		p.StructuredOutput = &s.StructuredOutput
	case models.KeyOutputSchema:
		p.OutputSchema = &s.OutputSchema
	case models.KeyCurrentTemplateID:
		p.CurrentTemplateID = &s.CurrentTemplateID
	}
	return p, nil
}
