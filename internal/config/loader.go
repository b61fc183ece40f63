package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "SCORECARD",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance so
// CLI flag bindings participate in precedence.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "SCORECARD",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (set via viper.BindPFlag)
// 2. Environment variables (SCORECARD_*)
// 3. Project config (.scorecard.yaml in current directory)
// 4. User config (~/.config/scorecard/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName(".scorecard")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", "scorecard"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if len(cfg.Providers) == 0 {
		cfg.Providers = defaultProviders()
	}

	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// setDefaults configures default values.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")

	l.v.SetDefault("server.addr", ":8080")
	l.v.SetDefault("server.cors_origins", []string{"*"})

	l.v.SetDefault("assessment.max_questions", 20)
	l.v.SetDefault("assessment.hard_cap", 30)
	l.v.SetDefault("assessment.default_persona", "Enabler")

	l.v.SetDefault("store.path", ".scorecard/reports.db")
	l.v.SetDefault("session.ttl", "2h")
}

// defaultProviders is the fallback chain used when no providers are
// configured: OpenAI first, then Groq, then a local Ollama endpoint as the
// best-effort last resort.
func defaultProviders() []ProviderConfig {
	return []ProviderConfig{
		{
			Name:        "openai",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   4096,
			Temperature: 0.7,
			Timeout:     "2m",
		},
		{
			Name:        "groq",
			BaseURL:     "https://api.groq.com/openai/v1",
			Model:       "llama-3.3-70b-versatile",
			APIKeyEnv:   "GROQ_API_KEY",
			MaxTokens:   4096,
			Temperature: 0.7,
			Timeout:     "2m",
		},
		{
			Name:        "ollama",
			BaseURL:     "http://localhost:11434/v1",
			Model:       "llama3.1",
			MaxTokens:   4096,
			Temperature: 0.7,
			Timeout:     "5m",
		},
	}
}
