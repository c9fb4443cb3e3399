package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"promptbox/internal/database"
)

const appName = "promptbox"

// Config is the process configuration. Everything the user edits at runtime
// lives in the settings table instead.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	LLM      LLMConfig      `yaml:"llm"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" validate:"required"`
}

type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// SecretsConfig selects where the API key is stored.
type SecretsConfig struct {
	Backend        string `yaml:"backend" validate:"oneof=database keyring"`
	KeyringService string `yaml:"keyring_service" validate:"required_if=Backend keyring"`
}

type LLMConfig struct {
	// BaseURL overrides the Gemini endpoint, mostly for proxies.
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: database.GetDefaultDBPath()},
		Log:      LogConfig{Level: "info", Development: database.IsDevelopment()},
		Secrets:  SecretsConfig{Backend: "database", KeyringService: appName},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/promptbox/config.yaml.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// Loader reads configuration from a filesystem and an environment lookup.
type Loader struct {
	fs       afero.Fs
	lookup   func(string) (string, bool)
	validate *validator.Validate
}

func NewLoader(fs afero.Fs, lookup func(string) (string, bool)) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Loader{fs: fs, lookup: lookup, validate: validator.New()}
}

// Load reads path (DefaultPath when empty). A missing file is not an error.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := afero.ReadFile(l.fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	l.applyEnv(cfg)

	if err := l.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return nil, fmt.Errorf("invalid config: %s failed on '%s' with value '%v'", e.Namespace(), e.Tag(), e.Value())
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) applyEnv(cfg *Config) {
	if v, ok := l.lookup("PROMPTBOX_DB_PATH"); ok && strings.TrimSpace(v) != "" {
		cfg.Database.Path = strings.TrimSpace(v)
	}
	if v, ok := l.lookup("PROMPTBOX_LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := l.lookup("PROMPTBOX_SECRETS_BACKEND"); ok && strings.TrimSpace(v) != "" {
		cfg.Secrets.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := l.lookup("PROMPTBOX_LLM_BASE_URL"); ok {
		cfg.LLM.BaseURL = strings.TrimSpace(v)
	}
}

// Load is the process entry point: it reads .env from the project root when
// one exists, then the config file at path.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return NewLoader(nil, nil).Load(path)
}
