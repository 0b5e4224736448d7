// Package config loads the application configuration from, in order of
// precedence: defaults, a YAML file, JEEPREP_-prefixed environment
// variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the full application configuration. Access keys replace the
// original deployment's baked-in unlock strings; leaving one empty
// leaves that area unlocked.
type Config struct {
	Addr      string `koanf:"addr" validate:"required"`
	DBPath    string `koanf:"db_path" validate:"required"`
	ReposDir  string `koanf:"repos_dir" validate:"required"`
	AccessKey string `koanf:"access_key"`
	AdminKey  string `koanf:"admin_key"`

	// SyncEvery re-runs the content sync on this interval ("45m", "2h").
	// Empty disables periodic sync; a manual trigger stays available.
	SyncEvery string `koanf:"sync_every" validate:"omitempty,duration"`

	StudentName string `koanf:"student_name"`

	OpenAI OpenAIConfig `koanf:"openai"`
}

// OpenAIConfig configures the feedback generator. An empty APIKey
// disables AI feedback; the page then renders a not-configured notice.
type OpenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:        ":8080",
		DBPath:      "jeeprep.db",
		ReposDir:    "repos",
		StudentName: "student",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
	}
}

// SyncInterval parses SyncEvery; zero means periodic sync is off.
func (c Config) SyncInterval() time.Duration {
	if c.SyncEvery == "" {
		return 0
	}
	d, err := time.ParseDuration(c.SyncEvery)
	if err != nil {
		return 0
	}
	return d
}

// Load layers the YAML file at path (skipped when absent), environment
// variables, and flags over the defaults, then validates the result.
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	// JEEPREP_SYNC_EVERY -> sync_every; double underscore nests:
	// JEEPREP_OPENAI__API_KEY -> openai.api_key.
	err := k.Load(env.Provider("JEEPREP_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "JEEPREP_"))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load environment config: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("failed to load flag config: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks a configuration against its struct constraints.
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register duration validator: %w", err)
	}
	if err := v.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
