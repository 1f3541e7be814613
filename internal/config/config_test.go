package config

import (
	"errors"
	"testing"

	"github.com/amishk599/tailor/internal/model"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultModel.Provider != model.ProviderOpenAI {
		t.Errorf("Provider = %q, want openai", cfg.DefaultModel.Provider)
	}
	if cfg.CurrentProfile != "" {
		t.Errorf("CurrentProfile = %q, want empty", cfg.CurrentProfile)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.CurrentProfile = "work"
	cfg.Profiles["work"] = ProfileSummary{DisplayName: "Work"}
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if got.CurrentProfile != "work" {
		t.Errorf("CurrentProfile = %q, want work", got.CurrentProfile)
	}
	if got.Profiles["work"].DisplayName != "Work" {
		t.Errorf("profile summary not persisted: %+v", got.Profiles)
	}
}

func TestResolveModel_Precedence(t *testing.T) {
	def := model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: 0.7}
	preferred := &model.ModelConfig{Provider: "anthropic", ModelName: "claude-sonnet-4-0", Temperature: 0.5}
	temp := 0.2
	override := &ModelOverride{Provider: "openai", ModelName: "gpt-4o-mini", Temperature: &temp}

	tests := []struct {
		name     string
		override *ModelOverride
		prof     model.Profile
		want     string
	}{
		{"override wins", override, model.Profile{PreferredModel: preferred}, "gpt-4o-mini"},
		{"preferred over default", nil, model.Profile{PreferredModel: preferred}, "claude-sonnet-4-0"},
		{"default last", nil, model.Profile{}, "gpt-4o"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveModel(tt.override, tt.prof, def)
			if got.ModelName != tt.want {
				t.Errorf("ModelName = %q, want %q", got.ModelName, tt.want)
			}
		})
	}
}

func TestResolveModel_OverrideInheritsTemperature(t *testing.T) {
	def := model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: 0.7}
	got := ResolveModel(&ModelOverride{Provider: "openai", ModelName: "gpt-4o-mini"}, model.Profile{}, def)
	if got.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", got.Temperature)
	}
}

func TestResolveModel_ExplicitZeroTemperature(t *testing.T) {
	def := model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: 0.7}
	zero := 0.0
	got := ResolveModel(&ModelOverride{Temperature: &zero}, model.Profile{}, def)
	if got.Temperature != 0 {
		t.Errorf("Temperature = %v, want 0", got.Temperature)
	}
	if got.Provider != "openai" || got.ModelName != "gpt-4o" {
		t.Errorf("provider/model not inherited: %+v", got)
	}
}

func TestValidateModel(t *testing.T) {
	tests := []struct {
		name    string
		mc      model.ModelConfig
		wantErr bool
	}{
		{"valid", model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: 0.7}, false},
		{"zero temperature valid", model.ModelConfig{Provider: "openai", ModelName: "gpt-4o"}, false},
		{"missing provider", model.ModelConfig{ModelName: "gpt-4o"}, true},
		{"missing model", model.ModelConfig{Provider: "openai"}, true},
		{"temperature too high", model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: 2.5}, true},
		{"temperature negative", model.ModelConfig{Provider: "openai", ModelName: "gpt-4o", Temperature: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModel(tt.mc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModel(%+v) err = %v, wantErr %v", tt.mc, err, tt.wantErr)
			}
		})
	}
}

func TestCredentialFor_Missing(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := CredentialFor(model.ProviderOpenAI)
	if !errors.Is(err, model.ErrCredentialMissing) {
		t.Errorf("expected ErrCredentialMissing, got %v", err)
	}
}

func TestCredentialFor_Set(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	key, err := CredentialFor(model.ProviderAnthropic)
	if err != nil {
		t.Fatalf("CredentialFor: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q", key)
	}
}

func TestDataDir_Resolution(t *testing.T) {
	t.Setenv("TAILOR_DATA_DIR", "/tmp/env-data")
	if got := DataDir("/tmp/flag-data"); got != "/tmp/flag-data" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := DataDir(""); got != "/tmp/env-data" {
		t.Errorf("env should win over default, got %q", got)
	}
	t.Setenv("TAILOR_DATA_DIR", "")
	if got := DataDir(""); got != "data" {
		t.Errorf("default = %q, want data", got)
	}
}
