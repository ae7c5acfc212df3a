package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"INSIGHTONE_API_URL", "INSIGHTONE_API_TOKEN", "INSIGHTONE_CATALOG_FILE",
		"HTTP_CLIENT_TIMEOUT_MS", "CATALOG_TTL_MS", "CSV_PREVIEW_CHARS", "LOG_COMPRESS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Empty(t, cfg.CatalogToken)
	assert.Equal(t, 30*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, time.Duration(0), cfg.CatalogTTL)
	assert.Equal(t, 1000, cfg.CSVPreviewChars)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INSIGHTONE_API_URL", "https://api.insightone.example")
	t.Setenv("INSIGHTONE_API_TOKEN", "svc")
	t.Setenv("HTTP_CLIENT_TIMEOUT_MS", "0")
	t.Setenv("RESULT_CACHE_MAX_ITEMS", "8")
	t.Setenv("LOG_COMPRESS", "off")
	t.Setenv("DEFAULT_SEARCH_LIMIT", "not-a-number")

	cfg := Load()
	assert.Equal(t, "https://api.insightone.example", cfg.APIBaseURL)
	assert.Equal(t, "svc", cfg.CatalogToken)
	assert.Equal(t, time.Duration(0), cfg.HTTPClientTimeout)
	assert.Equal(t, 8, cfg.ResultCacheMaxItems)
	assert.False(t, cfg.LogCompress)
	assert.Equal(t, DefaultSearchLimitValue, cfg.DefaultSearchLimit)
}

func TestConfig_Logging(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/insightone.log")

	lc := Load().Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "/tmp/insightone.log", lc.FilePath)
	assert.Equal(t, 5, lc.MaxBackups)
}

func TestConfig_NewClient(t *testing.T) {
	cfg := &Config{APIBaseURL: "https://api.insightone.example/", HTTPClientTimeout: 5 * time.Second}

	c := cfg.NewClient()
	assert.Equal(t, "https://api.insightone.example", c.BaseURL())
	assert.Equal(t, 5*time.Second, c.HTTPClient().Timeout)
}
