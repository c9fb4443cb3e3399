package events

import (
	"context"
	"encoding/json"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

func logRuntimeEvent(ctx context.Context, evt ChangeEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		runtime.LogError(ctx, "events: failed to marshal change event: "+err.Error())
		return
	}
	runtime.LogDebug(ctx, string(data))
}
