package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"promptbox/internal/events"
	"promptbox/internal/models"
	"promptbox/internal/repositories"
)

// SaveAsTemplate stores the current generation settings under name,
// overwriting the config of an existing template with the same name, and
// marks it current. It returns nil when the name is blank or storage fails.
func (s *SettingsService) SaveAsTemplate(ctx context.Context, name string) *models.Template {
	name = strings.TrimSpace(name)
	if name == "" {
		s.fail("save template", ErrTemplateNameEmpty)
		return nil
	}

	cfg := models.ConfigFromSettings(s.Snapshot())
	existing, err := s.templates.GetByName(ctx, name)
	if err != nil {
		s.fail("save template", err)
		return nil
	}

	now := time.Now()
	tmpl := existing
	action := "updated"
	if tmpl != nil {
		tmpl.Config = cfg
		tmpl.UpdatedAt = now
		err = s.templates.Update(ctx, tmpl)
	} else {
		tmpl = &models.Template{Name: name, Config: cfg, CreatedAt: now, UpdatedAt: now}
		action = "created"
		err = s.templates.Create(ctx, tmpl)
	}
	if err != nil {
		s.fail(fmt.Sprintf("save template %q", name), err)
		return nil
	}

	if err := s.refreshTemplates(ctx); err != nil {
		return nil
	}
	id := tmpl.ID
	if err := s.Patch(ctx, models.SettingsPatch{CurrentTemplateID: &id}); err != nil {
		return nil
	}

	evt := events.New(events.TopicTemplates, action)
	evt.ID = tmpl.ID
	s.emitter.Emit(ctx, evt)
	return tmpl
}

// LoadTemplate copies every config field of template id into the current
// settings, persists those keys in one batch and marks the template current.
// Settings a template does not hold are left alone.
func (s *SettingsService) LoadTemplate(ctx context.Context, id uint) bool {
	tmpl, err := s.templates.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			err = fmt.Errorf("%w: %d", ErrTemplateNotFound, id)
		}
		s.fail("load template", err)
		return false
	}

	p := templatePatch(tmpl)
	next := s.Snapshot()
	keys := applyPatch(&next, p)
	if err := s.validate.Struct(next); err != nil {
		s.fail(fmt.Sprintf("load template %d", id), fmt.Errorf("%w: %v", ErrInvalidSetting, err))
		return false
	}

	rows, err := encodeSettings(next, keys)
	if err != nil {
		s.fail("encode settings", err)
		return false
	}
	if err := s.settings.BulkPut(ctx, rows); err != nil {
		s.fail(fmt.Sprintf("load template %d", id), err)
		return false
	}

	s.mu.Lock()
	applyPatch(&s.current, p)
	s.templateName = tmpl.Name
	s.lastErr = ""
	s.mu.Unlock()

	s.logger.Info("template loaded", zap.Uint("id", tmpl.ID), zap.String("name", tmpl.Name))
	s.emitter.Emit(ctx, events.New(events.TopicSettings, "template-loaded"))
	return true
}

func templatePatch(t *models.Template) models.SettingsPatch {
	cfg := t.Config
	id := t.ID
	return models.SettingsPatch{
		ModelName:         &cfg.ModelName,
		SystemPrompt:      &cfg.SystemPrompt,
		Temperature:       &cfg.Temperature,
		TopP:              &cfg.TopP,
		MaxOutputTokens:   &cfg.MaxOutputTokens,
		StructuredOutput:  &cfg.StructuredOutput,
		OutputSchema:      &cfg.OutputSchema,
		CurrentTemplateID: &id,
	}
}

// DeleteTemplate removes template id and clears the current template
// pointer when it referenced it.
func (s *SettingsService) DeleteTemplate(ctx context.Context, id uint) bool {
	if err := s.templates.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			err = fmt.Errorf("%w: %d", ErrTemplateNotFound, id)
		}
		s.fail(fmt.Sprintf("delete template %d", id), err)
		return false
	}

	if s.Snapshot().CurrentTemplateID == id {
		var none uint
		if err := s.Patch(ctx, models.SettingsPatch{CurrentTemplateID: &none}); err != nil {
			return false
		}
	}
	if err := s.refreshTemplates(ctx); err != nil {
		return false
	}

	evt := events.New(events.TopicTemplates, "deleted")
	evt.ID = id
	s.emitter.Emit(ctx, evt)
	return true
}

// Templates returns the cached template list ordered by name.
func (s *SettingsService) Templates() []*models.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Template, len(s.templateList))
	copy(out, s.templateList)
	return out
}

// CurrentTemplateName is "" when no template is current or the current id
// no longer exists.
func (s *SettingsService) CurrentTemplateName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templateName
}

func (s *SettingsService) refreshTemplates(ctx context.Context) error {
	list, err := s.templates.GetAll(ctx)
	if err != nil {
		return s.fail("list templates", err)
	}
	s.mu.Lock()
	s.templateList = list
	s.templateName = resolveTemplateName(list, s.current.CurrentTemplateID)
	s.mu.Unlock()
	return nil
}

func resolveTemplateName(list []*models.Template, id uint) string {
	if id == 0 {
		return ""
	}
	for _, t := range list {
		if t.ID == id {
			return t.Name
		}
	}
	return ""
}
