package integration_tests

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"
	"gorm.io/gorm"

	"promptbox/internal/database"
	"promptbox/internal/llm/client"
	"promptbox/internal/models"
	"promptbox/internal/repositories"
	"promptbox/internal/services"
)

type echoGenerator struct {
	calls int
}

func (g *echoGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.calls++
	reply := "echo: " + contents[0].Parts[0].Text
	if config != nil && config.ResponseSchema != nil {
		reply = `{"echo":true}`
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(reply, genai.RoleModel)}},
	}, nil
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(database.Config{
		Path:   filepath.Join(t.TempDir(), "promptbox.db"),
		Logger: zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newServices(t *testing.T, db *gorm.DB, gen *echoGenerator, ring keyring.Keyring) *services.DbServices {
	t.Helper()
	svc := services.NewDbServices(db, services.Options{
		Logger:     zaptest.NewLogger(t),
		SecretRing: ring,
		Generators: func(ctx context.Context, apiKey string) (client.Generator, error) {
			return gen, nil
		},
	})
	require.NoError(t, svc.Startup(context.Background()))
	return svc
}

func TestServices_SettingsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	gen := &echoGenerator{}

	first := newServices(t, db, gen, nil)
	require.True(t, first.Settings.SetTemperature(ctx, 0.4))
	require.True(t, first.Settings.SetTheme(ctx, "system"))
	require.True(t, first.Settings.SetAPIKey(ctx, "secret"))

	second := newServices(t, db, gen, nil)
	got := second.Settings.Snapshot()
	assert.Equal(t, 0.4, got.Temperature)
	assert.Equal(t, "system", got.Theme)
	assert.Equal(t, "secret", got.APIKey)

	var count int64
	require.NoError(t, db.Model(&models.Setting{}).Count(&count).Error)
	assert.Equal(t, int64(len(models.SettingKeys)), count)
}

func TestServices_APIKeyInKeyring(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	ring := keyring.NewArrayKeyring(nil)

	svc := newServices(t, db, &echoGenerator{}, ring)
	require.True(t, svc.Settings.SetAPIKey(ctx, "from-ring"))

	item, err := ring.Get(models.KeyAPIKey)
	require.NoError(t, err)
	assert.Equal(t, `"from-ring"`, string(item.Data))

	stored, err := repositories.NewSettingRepository(db).Get(ctx, models.KeyAPIKey)
	require.NoError(t, err)
	assert.Nil(t, stored)

	again := newServices(t, db, &echoGenerator{}, ring)
	assert.Equal(t, "from-ring", again.Settings.Snapshot().APIKey)
}

func TestServices_TemplatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	svc := newServices(t, db, &echoGenerator{}, nil)

	first := svc.Settings.SaveAsTemplate(ctx, "A")
	require.NotNil(t, first)
	time.Sleep(5 * time.Millisecond)
	require.True(t, svc.Settings.SetTopP(ctx, 0.3))
	second := svc.Settings.SaveAsTemplate(ctx, "A")
	require.NotNil(t, second)

	all, err := repositories.NewTemplateRepository(db).GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 0.3, all[0].Config.TopP)
	assert.True(t, all[0].UpdatedAt.After(first.UpdatedAt))

	restarted := newServices(t, db, &echoGenerator{}, nil)
	assert.Equal(t, "A", restarted.Settings.CurrentTemplateName())

	require.True(t, restarted.Settings.DeleteTemplate(ctx, second.ID))
	assert.Zero(t, restarted.Settings.Snapshot().CurrentTemplateID)
}

func TestServices_HistoryLimitScenario(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	svc := newServices(t, db, &echoGenerator{}, nil)
	require.True(t, svc.Settings.SetMaxHistoryItems(ctx, 2))

	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)
	t3 := t2.Add(time.Minute)
	for _, ts := range []time.Time{t2, t3, t1} {
		require.NotZero(t, svc.History.Add(ctx, models.HistoryItem{Prompt: ts.Format(time.Kitchen), Timestamp: ts}))
	}

	svc.History.EnforceLimit(ctx, svc.Settings.Snapshot().MaxHistoryItems)

	stored, err := repositories.NewHistoryRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.True(t, stored[0].Timestamp.Equal(t3))
	assert.True(t, stored[1].Timestamp.Equal(t2))

	mem := svc.History.Items()
	require.Len(t, mem, 2)
	assert.True(t, mem[0].Timestamp.Equal(t3))
	assert.True(t, mem[1].Timestamp.Equal(t2))
}

func TestServices_SubmitEndToEnd(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	gen := &echoGenerator{}
	svc := newServices(t, db, gen, nil)

	_, err := svc.Prompts.Submit(ctx, "hi")
	assert.ErrorIs(t, err, client.ErrMissingAPIKey)
	assert.Zero(t, gen.calls)

	require.True(t, svc.Settings.SetAPIKey(ctx, "k"))
	item, err := svc.Prompts.Submit(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", item.Response)
	assert.Equal(t, 1, gen.calls)

	require.True(t, svc.Settings.SetStructuredOutput(ctx, true))
	require.True(t, svc.Settings.SetOutputSchema(ctx, `{"type":"object","properties":{"echo":{"type":"boolean"}}}`))
	item, err = svc.Prompts.Submit(ctx, "json please")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"echo\": true\n}", item.Response)

	stored, err := repositories.NewHistoryRepository(db).List(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}
