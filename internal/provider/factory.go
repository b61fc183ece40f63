package provider

import (
	"fmt"
	"os"
	"time"

	"github.com/avenirlabs/scorecard-ai/internal/adapters/llm"
	"github.com/avenirlabs/scorecard-ai/internal/config"
	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/logging"
)

// FromConfig builds the fallback chain from configuration. API keys are read
// from the environment variable each provider names; a missing key is not an
// error here — the availability probe will reject the provider at
// Initialize time, which keeps key-less local backends (ollama) usable.
func FromConfig(cfg *config.Config, logger *logging.Logger) (*Manager, error) {
	providers := make([]core.Provider, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		adapter, err := adapterFromConfig(pc)
		if err != nil {
			return nil, fmt.Errorf("configuring provider %s: %w", pc.Name, err)
		}
		providers = append(providers, adapter)
	}
	return NewManager(providers, WithLogger(logger))
}

func adapterFromConfig(pc config.ProviderConfig) (*llm.Adapter, error) {
	var timeout time.Duration
	if pc.Timeout != "" {
		d, err := time.ParseDuration(pc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing timeout: %w", err)
		}
		timeout = d
	}

	apiKey := ""
	if pc.APIKeyEnv != "" {
		apiKey = os.Getenv(pc.APIKeyEnv)
	}

	return llm.New(llm.Config{
		Name:        pc.Name,
		BaseURL:     pc.BaseURL,
		APIKey:      apiKey,
		Model:       pc.Model,
		MaxTokens:   pc.MaxTokens,
		Temperature: float32(pc.Temperature),
		Timeout:     timeout,
	})
}
