package events

import (
	"context"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"
)

// Emitter publishes change events to whoever mirrors the stores.
type Emitter interface {
	Emit(ctx context.Context, evt ChangeEvent)
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, ChangeEvent) {}

// Nop discards every event.
func Nop() Emitter { return nopEmitter{} }

// LogEmitter writes events to a logger. The CLI uses it since nothing
// subscribes there.
type LogEmitter struct {
	Logger *zap.Logger
}

func (e LogEmitter) Emit(_ context.Context, evt ChangeEvent) {
	if e.Logger == nil {
		return
	}
	e.Logger.Debug("store changed",
		zap.String("topic", string(evt.Topic)),
		zap.String("action", evt.Action),
		zap.Uint("id", evt.ID),
		zap.String("key", evt.Key))
}

// RuntimeEmitter forwards events to the Wails event bus. It is inert until
// Startup hands it the runtime context.
type RuntimeEmitter struct {
	mu  sync.RWMutex
	ctx context.Context
}

func NewRuntimeEmitter() *RuntimeEmitter {
	return &RuntimeEmitter{}
}

func (e *RuntimeEmitter) Startup(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()
}

func (e *RuntimeEmitter) Emit(_ context.Context, evt ChangeEvent) {
	e.mu.RLock()
	ctx := e.ctx
	e.mu.RUnlock()
	if ctx == nil {
		return
	}
	runtime.EventsEmit(ctx, string(evt.Topic), evt)
	logRuntimeEvent(ctx, evt)
}
