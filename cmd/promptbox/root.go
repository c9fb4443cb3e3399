package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptbox/internal/bootstrap"
	"promptbox/internal/config"
	"promptbox/internal/llm/client"
	"promptbox/internal/services"
)

// rootOptions holds the global flags and the environment opened for the
// running command.
type rootOptions struct {
	configPath string
	dbPath     string
	verbose    bool

	// logger and generators replace the configured ones when set.
	logger     *zap.Logger
	generators client.GeneratorFactory

	env *bootstrap.Env
}

func (o *rootOptions) services() *services.DbServices {
	return o.env.Services
}

func newRootCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "promptbox",
		Short:         "Send prompts to Gemini and manage settings, templates and history",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.open(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/promptbox/config.yaml)")
	flags.StringVar(&o.dbPath, "db", "", "database file, overrides the config")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(
		newPromptCommand(o),
		newSettingsCommand(o),
		newTemplateCommand(o),
		newHistoryCommand(o),
	)
	return cmd
}

// execute runs cmd and always closes the environment it opened, including
// when RunE fails.
func execute(ctx context.Context, cmd *cobra.Command, o *rootOptions) error {
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, o.close())
}

func (o *rootOptions) open(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}

	env, err := bootstrap.Open(cfg, bootstrap.Options{Logger: o.logger, Generators: o.generators})
	if err != nil {
		return err
	}
	o.env = env
	if err := env.Services.Startup(cmd.Context()); err != nil {
		return errors.Join(err, o.close())
	}
	return nil
}

func (o *rootOptions) close() error {
	if o.env == nil {
		return nil
	}
	err := o.env.Close()
	o.env = nil
	return err
}
