package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"promptbox/internal/llm/client"
)

type replyGenerator struct {
	calls int
}

func (g *replyGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	g.calls++
	text := "**reply** to " + contents[0].Parts[0].Text
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}, nil
}

type cliHarness struct {
	t      *testing.T
	dir    string
	gen    *replyGenerator
	closed bool
}

func newHarness(t *testing.T) *cliHarness {
	t.Helper()
	t.Setenv("PROMPTBOX_DB_PATH", "")
	t.Setenv("PROMPTBOX_SECRETS_BACKEND", "")
	return &cliHarness{t: t, dir: t.TempDir(), gen: &replyGenerator{}}
}

func (h *cliHarness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	opts := &rootOptions{
		logger: zap.NewNop(),
		generators: func(ctx context.Context, apiKey string) (client.Generator, error) {
			return h.gen, nil
		},
	}
	cmd := newRootCommand(opts)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{
		"--config", filepath.Join(h.dir, "config.yaml"),
		"--db", filepath.Join(h.dir, "promptbox.db"),
	}, args...))
	err := execute(context.Background(), cmd, opts)
	h.closed = opts.env == nil
	return out.String(), err
}

func (h *cliHarness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run("", args...)
	require.NoError(h.t, err, out)
	return out
}

func TestSettingsCommands(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("settings", "list")
	assert.Contains(t, out, "SETTINGS")
	assert.Contains(t, out, `"gemini-1.5-flash"`)
	assert.Contains(t, out, "maxHistoryItems")

	h.mustRun("settings", "set", "temperature", "0.2")
	h.mustRun("settings", "set", "systemPrompt", "Be brief.")
	assert.Equal(t, "0.2\n", h.mustRun("settings", "get", "temperature"))
	assert.Equal(t, "\"Be brief.\"\n", h.mustRun("settings", "get", "systemPrompt"))

	h.mustRun("settings", "set", "apiKey", "secret-key")
	out = h.mustRun("settings", "get", "apiKey")
	assert.NotContains(t, out, "secret-key")
	assert.Contains(t, out, "(set)")

	_, err := h.run("", "settings", "set", "temperature", "7")
	assert.Error(t, err)
	_, err = h.run("", "settings", "set", "color", "blue")
	assert.ErrorContains(t, err, "unknown setting")
	_, err = h.run("", "settings", "get", "color")
	assert.Error(t, err)
}

func TestFailedCommandClosesEnv(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "prompt", "hello")
	require.ErrorIs(t, err, client.ErrMissingAPIKey)
	assert.True(t, h.closed)

	_, err = h.run("", "template", "delete", "9")
	require.Error(t, err)
	assert.True(t, h.closed)

	h.mustRun("settings", "list")
	assert.True(t, h.closed)
}

func TestPromptCommand(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "prompt", "hello")
	assert.ErrorIs(t, err, client.ErrMissingAPIKey)
	assert.Zero(t, h.gen.calls)

	h.mustRun("settings", "set", "apiKey", "k")

	out := h.mustRun("prompt", "hello", "there")
	assert.Equal(t, "**reply** to hello there\n", out)

	out, err = h.run("from stdin", "prompt", "--no-history")
	require.NoError(t, err)
	assert.Contains(t, out, "reply** to from stdin")

	out = h.mustRun("prompt", "--render", "--no-history", "styled")
	assert.Contains(t, out, "reply")
	assert.NotContains(t, out, "**reply**")

	out = h.mustRun("history", "list")
	assert.Contains(t, out, "> hello there")
	assert.NotContains(t, out, "from stdin")
	assert.Equal(t, 3, h.gen.calls)
}

func TestHistoryCommands(t *testing.T) {
	h := newHarness(t)
	h.mustRun("settings", "set", "apiKey", "k")
	h.mustRun("settings", "set", "maxHistoryItems", "2")

	for _, p := range []string{"one", "two", "three"} {
		h.mustRun("prompt", p)
	}

	out := h.mustRun("history", "list")
	assert.NotContains(t, out, "> one")
	assert.Contains(t, out, "> two")
	assert.Contains(t, out, "> three")
	assert.Less(t, strings.Index(out, "> three"), strings.Index(out, "> two"))

	out = h.mustRun("history", "list", "--limit", "1")
	assert.Contains(t, out, "> three")
	assert.NotContains(t, out, "> two")

	_, err := h.run("", "history", "rm", "abc")
	assert.ErrorContains(t, err, "invalid id")

	h.mustRun("history", "clear")
	assert.Empty(t, strings.TrimSpace(h.mustRun("history", "list")))
}

func TestTemplateCommands(t *testing.T) {
	h := newHarness(t)

	h.mustRun("settings", "set", "modelName", "gemini-2.0-flash")
	out := h.mustRun("template", "save", "fast")
	assert.Contains(t, out, `saved template 1 "fast"`)

	h.mustRun("settings", "set", "modelName", "gemini-2.5-pro")
	h.mustRun("settings", "set", "currentTemplateId", "0")

	out = h.mustRun("template", "list")
	assert.Contains(t, out, "fast")
	assert.Contains(t, out, "gemini-2.0-flash")
	assert.NotContains(t, out, "(current)")

	out = h.mustRun("template", "load", "1")
	assert.Contains(t, out, `loaded template "fast"`)
	assert.Equal(t, "\"gemini-2.0-flash\"\n", h.mustRun("settings", "get", "modelName"))
	assert.Contains(t, h.mustRun("template", "list"), "(current)")

	_, err := h.run("", "template", "load", "42")
	assert.ErrorContains(t, err, "template not found")

	h.mustRun("template", "delete", "1")
	assert.Equal(t, "0\n", h.mustRun("settings", "get", "currentTemplateId"))
	assert.NotContains(t, h.mustRun("template", "list"), "fast")
}
