package config

import (
	"fmt"
	"strings"

	"github.com/lascivaroma/lasla-apn-converter/internal/model"
)

// Lemmatizer providers.
const (
	ProviderNone  = "none"
	ProviderTable = "table"
	ProviderHTTP  = "http"
)

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	if _, err := model.ParseVariant(c.Transcode.Variant); err != nil {
		return fmt.Errorf("transcode.variant: %w", err)
	}
	if c.Transcode.Workers <= 0 {
		return fmt.Errorf("transcode.workers must be > 0 (got %d)", c.Transcode.Workers)
	}
	if err := c.Align.Lemmatizer.Validate(); err != nil {
		return fmt.Errorf("align.lemmatizer: %w", err)
	}
	return nil
}

// Validate checks the provider name and the settings it needs.
func (l *LemmatizerConfig) Validate() error {
	switch strings.ToLower(l.Provider) {
	case "", ProviderNone:
		return nil
	case ProviderTable:
		if l.Table == "" {
			return fmt.Errorf("table provider requires a table path")
		}
	case ProviderHTTP:
		if l.URL == "" {
			return fmt.Errorf("http provider requires a url")
		}
		if l.Timeout <= 0 {
			return fmt.Errorf("timeout must be > 0 (got %v)", l.Timeout)
		}
	default:
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	return nil
}
