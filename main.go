package main

import (
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"go.uber.org/zap"

	"promptbox/internal/assets"
	"promptbox/internal/bootstrap"
	"promptbox/internal/config"
	"promptbox/internal/events"
)

//go:embed all:frontend/dist
var frontend embed.FS

func main() {
	cfg, err := config.Load(os.Getenv("PROMPTBOX_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	emitter := events.NewRuntimeEmitter()
	env, err := bootstrap.Open(cfg, bootstrap.Options{Emitter: emitter})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error opening database:", err)
		os.Exit(1)
	}

	manifest, err := assets.Handler(nil)
	if err != nil {
		env.Logger.Fatal("loading asset manifest", zap.Error(err))
	}

	app := NewApp(env.Services, emitter, env.Logger)
	app.dbClose = env.CloseDB

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "PromptBox",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets:  frontend,
			Handler: manifest,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "PromptBox",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.startup(ctx)
		},
		OnShutdown: app.shutdown,
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		env.Logger.Error("wails run", zap.Error(err))
	}
}
