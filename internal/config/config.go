// Package config provides configuration loading from environment variables.
package config

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/insightone/insightone-mcp/internal/logging"
	"github.com/insightone/insightone-mcp/pkg/client"
	"github.com/insightone/insightone-mcp/pkg/explorer"
	"github.com/insightone/insightone-mcp/pkg/jsoncompact"
)

// Tool output limit defaults
const (
	DefaultSearchLimitValue = 20
	MaxSearchLimitValue     = 200
)

// Config holds all configuration for the MCP server and the CLI.
type Config struct {
	APIBaseURL        string        // INSIGHTONE_API_URL, default "http://localhost:8000"
	CatalogToken      string        // INSIGHTONE_API_TOKEN, static catalog token
	CatalogFile       string        // INSIGHTONE_CATALOG_FILE, offline snapshot (JSON or YAML)
	UserToken         string        // INSIGHTONE_USER_TOKEN, CLI default user token
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 30000ms, 0 disables
	CatalogTTL        time.Duration // CATALOG_TTL_MS, default 0 (load once per process)

	ResultCacheMaxItems int // RESULT_CACHE_MAX_ITEMS, default 64
	CSVPreviewChars     int // CSV_PREVIEW_CHARS, default 1000

	// Compaction defaults (body_mode=compact)
	CompactMaxArrayItems int // COMPACT_MAX_ARRAY_ITEMS
	CompactMaxStringLen  int // COMPACT_MAX_STRING_LEN
	CompactMaxDepth      int // COMPACT_MAX_DEPTH

	// Tool output limits
	DefaultSearchLimit int // DEFAULT_SEARCH_LIMIT
	MaxSearchLimit     int // MAX_SEARCH_LIMIT

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:        getEnvString("INSIGHTONE_API_URL", client.DefaultBaseURL),
		CatalogToken:      getEnvString("INSIGHTONE_API_TOKEN", ""),
		CatalogFile:       getEnvString("INSIGHTONE_CATALOG_FILE", ""),
		UserToken:         getEnvString("INSIGHTONE_USER_TOKEN", ""),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 30000),
		CatalogTTL:        getEnvDurationMs("CATALOG_TTL_MS", 0),

		ResultCacheMaxItems: getEnvInt("RESULT_CACHE_MAX_ITEMS", 64),
		CSVPreviewChars:     getEnvInt("CSV_PREVIEW_CHARS", explorer.DefaultCSVPreviewChars),

		CompactMaxArrayItems: getEnvInt("COMPACT_MAX_ARRAY_ITEMS", jsoncompact.DefaultMaxArrayItems),
		CompactMaxStringLen:  getEnvInt("COMPACT_MAX_STRING_LEN", jsoncompact.DefaultMaxStringLen),
		CompactMaxDepth:      getEnvInt("COMPACT_MAX_DEPTH", jsoncompact.DefaultMaxDepth),

		DefaultSearchLimit: getEnvInt("DEFAULT_SEARCH_LIMIT", DefaultSearchLimitValue),
		MaxSearchLimit:     getEnvInt("MAX_SEARCH_LIMIT", MaxSearchLimitValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// Logging returns the logging section of the configuration.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		FilePath:   c.LogFile,
		MaxSizeMB:  c.LogMaxSizeMB,
		MaxBackups: c.LogMaxBackups,
		MaxAgeDays: c.LogMaxAgeDays,
		Compress:   c.LogCompress,
	}
}

// HTTPClient returns a client honoring HTTPClientTimeout.
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{Timeout: c.HTTPClientTimeout}
}

// NewClient returns a catalog client for APIBaseURL.
func (c *Config) NewClient() *client.Client {
	return client.New(
		client.WithBaseURL(c.APIBaseURL),
		client.WithCatalogToken(c.CatalogToken),
		client.WithHTTPClient(c.HTTPClient()),
	)
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
