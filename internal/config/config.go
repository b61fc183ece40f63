package config

// Config holds all application configuration.
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	Providers  []ProviderConfig `mapstructure:"providers"`
	Store      StoreConfig      `mapstructure:"store"`
	Session    SessionConfig    `mapstructure:"session"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// AssessmentConfig configures the question loop.
type AssessmentConfig struct {
	// MaxQuestions is the configured per-assessment ceiling. The provider's
	// done signal usually ends the loop earlier.
	MaxQuestions int `mapstructure:"max_questions"`
	// HardCap is the absolute runaway guard for auto-complete; independent
	// of MaxQuestions and never configurable above 30 in validation.
	HardCap        int    `mapstructure:"hard_cap"`
	DefaultPersona string `mapstructure:"default_persona"`
}

// ProviderConfig configures one OpenAI-compatible LLM backend. Order in the
// list is fallback order.
type ProviderConfig struct {
	Name        string  `mapstructure:"name"`
	BaseURL     string  `mapstructure:"base_url"`
	APIKeyEnv   string  `mapstructure:"api_key_env"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
	Timeout     string  `mapstructure:"timeout"`
}

// StoreConfig configures report document persistence.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig configures in-memory assessment sessions.
type SessionConfig struct {
	TTL string `mapstructure:"ttl"`
}
