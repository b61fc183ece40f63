package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoader_Defaults(t *testing.T) {
	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "auto" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "auto")
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Assessment.MaxQuestions != 20 {
		t.Errorf("Assessment.MaxQuestions = %d, want 20", cfg.Assessment.MaxQuestions)
	}
	if cfg.Assessment.HardCap != 30 {
		t.Errorf("Assessment.HardCap = %d, want 30", cfg.Assessment.HardCap)
	}
	if len(cfg.Providers) != 3 {
		t.Fatalf("len(Providers) = %d, want 3 defaults", len(cfg.Providers))
	}
	if cfg.Providers[0].Name != "openai" || cfg.Providers[2].Name != "ollama" {
		t.Errorf("default provider order = %v", []string{cfg.Providers[0].Name, cfg.Providers[1].Name, cfg.Providers[2].Name})
	}
}

func TestLoader_EnvOverride(t *testing.T) {
	t.Setenv("SCORECARD_LOG_LEVEL", "debug")
	t.Setenv("SCORECARD_ASSESSMENT_MAX_QUESTIONS", "12")

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Assessment.MaxQuestions != 12 {
		t.Errorf("Assessment.MaxQuestions = %d, want 12", cfg.Assessment.MaxQuestions)
	}
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: warn
providers:
  - name: custom
    base_url: http://example.test/v1
    model: test-model
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if len(cfg.Providers) != 1 || cfg.Providers[0].Name != "custom" {
		t.Errorf("Providers = %+v, want the single configured provider", cfg.Providers)
	}
	// Unset sections still get defaults.
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
}

func TestDefaultConfigYAML_Parses(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(DefaultConfigYAML), &doc); err != nil {
		t.Fatalf("DefaultConfigYAML is not valid YAML: %v", err)
	}
	for _, key := range []string{"log", "server", "assessment", "providers", "store", "session"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("DefaultConfigYAML missing %q section", key)
		}
	}
}

func TestDefaultConfigYAML_LoadsAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(DefaultConfigYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().WithConfigFile(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate(default config) = %v", err)
	}
}
