package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/avenirlabs/scorecard-ai/internal/adapters/state"
	"github.com/avenirlabs/scorecard-ai/internal/config"
	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/logging"
	"github.com/avenirlabs/scorecard-ai/internal/provider"
	"github.com/avenirlabs/scorecard-ai/internal/session"
)

// newLogger builds the logger from the persistent flags.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:  logLevel,
		Format: logFormat,
		Output: os.Stderr,
	})
}

// loadConfig loads and validates configuration, honoring --config and the
// flags bound into the shared viper instance.
func loadConfig() (*config.Config, error) {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader.WithConfigFile(cfgFile)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newManager builds the provider fallback chain from config.
func newManager(cfg *config.Config, logger *logging.Logger) (*provider.Manager, error) {
	return provider.FromConfig(cfg, logger)
}

// newReportStore opens the SQLite report store at the configured path.
func newReportStore(cfg *config.Config) (core.ReportStore, error) {
	return state.NewSQLiteReportStore(cfg.Store.Path)
}

// newSessionStore builds the TTL-bounded session store.
func newSessionStore(cfg *config.Config) *session.Store {
	ttl := 2 * time.Hour
	if cfg.Session.TTL != "" {
		if d, err := time.ParseDuration(cfg.Session.TTL); err == nil {
			ttl = d
		}
	}
	return session.NewStore(ttl)
}
