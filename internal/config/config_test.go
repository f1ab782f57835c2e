package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "json"

transcode:
  variant: "bpn"
  workers: 4
  lowercase: true

align:
  dictionary: "/data/dict.tsv"
  flat_dictionary: "/data/lemmes.la"
  lemmatizer:
    provider: "http"
    url: "http://collatinus:8080"
    timeout: "3s"

store:
  path: "/tmp/runs.db"
`

func TestLoad_ValidYAML(t *testing.T) {
	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "bpn", cfg.Transcode.Variant)
	assert.Equal(t, 4, cfg.Transcode.Workers)
	assert.True(t, cfg.Transcode.Lowercase)
	assert.False(t, cfg.Transcode.RawMorph)
	assert.Equal(t, "/data/dict.tsv", cfg.Align.Dictionary)
	assert.Equal(t, "/data/lemmes.la", cfg.Align.FlatDictionary)
	assert.Equal(t, ProviderHTTP, cfg.Align.Lemmatizer.Provider)
	assert.Equal(t, "http://collatinus:8080", cfg.Align.Lemmatizer.URL)
	assert.Equal(t, 3*time.Second, cfg.Align.Lemmatizer.Timeout)
	assert.Equal(t, "/tmp/runs.db", cfg.Store.Path)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "compact", cfg.Transcode.Variant)
	assert.Equal(t, 1, cfg.Transcode.Workers)
	assert.Equal(t, "", cfg.Align.Lemmatizer.Provider)
	assert.Equal(t, 10*time.Second, cfg.Align.Lemmatizer.Timeout)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	t.Setenv("LASLA_WORKERS", "8")
	t.Setenv("LASLA_LOG_LEVEL", "warn")

	cfg, err := Load(writeYAML(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Transcode.Workers)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: file")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Transcode: TranscodeConfig{Variant: "compact", Workers: 1},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"unknown variant", func(c *Config) { c.Transcode.Variant = "xml" }, "transcode.variant"},
		{"zero workers", func(c *Config) { c.Transcode.Workers = 0 }, "transcode.workers"},
		{"unknown provider", func(c *Config) { c.Align.Lemmatizer.Provider = "pie" }, "unknown provider"},
		{"table without path", func(c *Config) { c.Align.Lemmatizer.Provider = ProviderTable }, "table path"},
		{"http without timeout", func(c *Config) {
			c.Align.Lemmatizer.Provider = ProviderHTTP
			c.Align.Lemmatizer.URL = "http://x"
		}, "timeout"},
		{"disabled", func(c *Config) { c.Align.Lemmatizer.Provider = ProviderNone }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
