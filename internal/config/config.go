package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnvCSVURL overrides the configured endpoint when set.
const EnvCSVURL = "PETICIONES_CSV_URL"

// Config holds application configuration.
type Config struct {
	// CSVURL is the endpoint the ticket sheet is fetched from. Required
	// for every data operation; its absence is reported as a CONFIG load
	// error, never a crash.
	CSVURL string `json:"csv_url,omitempty"`

	// HTTPTimeoutSecs bounds the single fetch attempt. 0 means default (15).
	HTTPTimeoutSecs int `json:"http_timeout_secs,omitempty"`

	// Bind is the web UI listen address. Empty means 127.0.0.1.
	Bind string `json:"bind,omitempty"`

	// Port is the web UI listen port. 0 means 8477.
	Port int `json:"port,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HTTPTimeoutSecs: 15,
		Bind:            "127.0.0.1",
		Port:            8477,
	}
}

// Load loads configuration from baseDir/config.json, applies defaults, and
// lets the PETICIONES_CSV_URL environment variable override the endpoint.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.peticiones.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	cfg = Merge(DefaultConfig(), cfg)

	if url := strings.TrimSpace(os.Getenv(EnvCSVURL)); url != "" {
		cfg.CSVURL = url
	}

	return cfg, nil
}

// HTTPTimeout returns the fetch timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	secs := c.HTTPTimeoutSecs
	if secs <= 0 {
		secs = DefaultConfig().HTTPTimeoutSecs
	}
	return time.Duration(secs) * time.Second
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.CSVURL = overlay.CSVURL
	if result.CSVURL == "" {
		result.CSVURL = base.CSVURL
	}

	result.HTTPTimeoutSecs = overlay.HTTPTimeoutSecs
	if result.HTTPTimeoutSecs == 0 {
		result.HTTPTimeoutSecs = base.HTTPTimeoutSecs
	}

	result.Bind = overlay.Bind
	if result.Bind == "" {
		result.Bind = base.Bind
	}

	result.Port = overlay.Port
	if result.Port == 0 {
		result.Port = base.Port
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
