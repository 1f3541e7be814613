// Package config manages the global config.json at the data directory root
// and the environment-backed defaults and credentials around it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/amishk599/tailor/internal/fsutil"
	"github.com/amishk599/tailor/internal/model"
)

const (
	defaultProvider    = model.ProviderOpenAI
	defaultModelName   = "gpt-4o"
	defaultTemperature = 0.7
)

// ProfileSummary is the per-profile entry kept in the global config.
type ProfileSummary struct {
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Config is the global configuration persisted at <data>/config.json.
type Config struct {
	CurrentProfile string                    `json:"current_profile"`
	DefaultModel   model.ModelConfig         `json:"default_model"`
	Profiles       map[string]ProfileSummary `json:"profiles"`
}

// LoadEnv loads a .env file from the working directory if present. Missing
// files are not an error; real environment variables win over .env entries.
func LoadEnv() {
	_ = godotenv.Load()
}

// DataDir resolves the data directory: explicit flag value, then the
// TAILOR_DATA_DIR environment variable, then ./data.
func DataDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("TAILOR_DATA_DIR"); env != "" {
		return env
	}
	return "data"
}

func configPath(dataDir string) string {
	return filepath.Join(dataDir, "config.json")
}

// Load reads the global config, falling back to environment-derived defaults
// when no config.json exists yet.
func Load(dataDir string) (*Config, error) {
	cfg := &Config{
		DefaultModel: envDefaultModel(),
		Profiles:     map[string]ProfileSummary{},
	}

	err := fsutil.ReadJSON(configPath(dataDir), cfg)
	if err != nil && !fsutil.IsNotExist(err) {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = map[string]ProfileSummary{}
	}
	if cfg.DefaultModel.Provider == "" {
		cfg.DefaultModel = envDefaultModel()
	}
	if err := ValidateModel(cfg.DefaultModel); err != nil {
		return nil, fmt.Errorf("config default_model: %w", err)
	}
	return cfg, nil
}

// Save writes the global config atomically. A crash mid-switch therefore
// leaves the previous current_profile pointer intact.
func (c *Config) Save(dataDir string) error {
	if err := fsutil.WriteJSONAtomic(configPath(dataDir), c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

func envDefaultModel() model.ModelConfig {
	mc := model.ModelConfig{
		Provider:    defaultProvider,
		ModelName:   defaultModelName,
		Temperature: defaultTemperature,
	}
	if p := os.Getenv("TAILOR_DEFAULT_PROVIDER"); p != "" {
		mc.Provider = p
	}
	if m := os.Getenv("TAILOR_DEFAULT_MODEL"); m != "" {
		mc.ModelName = m
	}
	if t := os.Getenv("TAILOR_DEFAULT_TEMPERATURE"); t != "" {
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			mc.Temperature = f
		}
	}
	return mc
}

// ValidateModel checks that a ModelConfig is fully populated and within
// bounds before it reaches a provider.
func ValidateModel(mc model.ModelConfig) error {
	if mc.Provider == "" {
		return fmt.Errorf("provider must be set")
	}
	if mc.ModelName == "" {
		return fmt.Errorf("model_name must be set")
	}
	if mc.Temperature < 0 || mc.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0,2], got %v", mc.Temperature)
	}
	return nil
}

// ModelOverride carries per-invocation model settings from the command line.
// Empty fields inherit from the resolved default; Temperature is a pointer so
// an explicit zero survives resolution.
type ModelOverride struct {
	Provider    string
	ModelName   string
	Temperature *float64
}

// ResolveModel applies the precedence for a generation call: explicit request
// override, then the profile's preferred model, then the global default.
func ResolveModel(override *ModelOverride, prof model.Profile, def model.ModelConfig) model.ModelConfig {
	switch {
	case override != nil:
		mc := def
		if override.Provider != "" {
			mc.Provider = override.Provider
		}
		if override.ModelName != "" {
			mc.ModelName = override.ModelName
		}
		if override.Temperature != nil {
			mc.Temperature = *override.Temperature
		}
		return mc
	case prof.PreferredModel != nil:
		return *prof.PreferredModel
	default:
		return def
	}
}

// CredentialFor returns the API key for the given provider. Absence is a
// fatal precondition failure for any generation call, never a silent
// fallback to another provider.
func CredentialFor(provider string) (string, error) {
	var envVar string
	switch provider {
	case model.ProviderOpenAI:
		envVar = "OPENAI_API_KEY"
	case model.ProviderAnthropic:
		envVar = "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unknown provider %q", provider)
	}
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s (%s): %w", provider, envVar, model.ErrCredentialMissing)
	}
	return key, nil
}
