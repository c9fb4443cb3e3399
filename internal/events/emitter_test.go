package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogEmitter_WritesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	LogEmitter{Logger: zap.New(core)}.Emit(context.Background(), ChangeEvent{Topic: TopicHistory, Action: "add", ID: 7})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "history:changed", fields["topic"])
		assert.Equal(t, "add", fields["action"])
		assert.Equal(t, uint64(7), fields["id"])
	}
}

func TestRuntimeEmitter_InertBeforeStartup(t *testing.T) {
	e := NewRuntimeEmitter()
	assert.NotPanics(t, func() { e.Emit(context.Background(), New(TopicSettings, "set")) })
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Emit(context.Background(), New(TopicTemplates, "delete")) })
}
