package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PaulPCIO/dashboard-widget-document-list/internal/db"
)

// Config holds the document list service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Index    IndexConfig    `yaml:"index"`
	Query    QueryConfig    `yaml:"query"`
	Live     LiveConfig     `yaml:"live"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
// Live query streams are exempt from the write timeout.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
	HealthCheckMS   int `yaml:"health_check_timeout_ms"`
}

// HealthCheckTimeout bounds each component probe of GET /health.
func (h HTTPConfig) HealthCheckTimeout() time.Duration {
	return time.Duration(h.HealthCheckMS) * time.Millisecond
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// IndexConfig lists extra document fields to index besides _id and _type.
type IndexConfig struct {
	Fields []IndexFieldConfig `yaml:"fields"`
}

// IndexFieldConfig is one indexed document field.
type IndexFieldConfig struct {
	Path  string `yaml:"path"`  // JSON path, e.g. $.title
	Alias string `yaml:"alias"` // query name, e.g. title
	Type  string `yaml:"type"`  // tag, text, numeric
}

// QueryConfig holds fetch settings.
type QueryConfig struct {
	MaxResults int    `yaml:"max_results"`
	APIVersion string `yaml:"api_version"` // default for subscriptions that do not pin one
}

// LiveConfig holds live query settings.
type LiveConfig struct {
	SettleIntervalMS int `yaml:"settle_interval_ms"`
	KeepaliveSec     int `yaml:"keepalive_sec"`
}

// SettleInterval returns the settle interval as a duration.
func (l LiveConfig) SettleInterval() time.Duration {
	return time.Duration(l.SettleIntervalMS) * time.Millisecond
}

// Keepalive returns the stream keep-alive period as a duration.
func (l LiveConfig) Keepalive() time.Duration {
	return time.Duration(l.KeepaliveSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.HealthCheckMS <= 0 {
		c.HTTP.HealthCheckMS = 2000
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "doclist:"
	}
	if c.Query.MaxResults <= 0 {
		c.Query.MaxResults = 1000
	}
	if c.Query.APIVersion == "" {
		c.Query.APIVersion = "2"
	}
	if c.Live.SettleIntervalMS <= 0 {
		c.Live.SettleIntervalMS = 1000
	}
	if c.Live.KeepaliveSec <= 0 {
		c.Live.KeepaliveSec = 15
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Database.DB < 0 {
		return fmt.Errorf("database.db must be >= 0, got %d", c.Database.DB)
	}
	if c.Storage.KeyPrefix != "" && !db.IsValidIdentifier(c.Storage.KeyPrefix) {
		return fmt.Errorf("storage.key_prefix contains invalid characters: %q", c.Storage.KeyPrefix)
	}
	switch c.Query.APIVersion {
	case "", "1", "2", "3", "4":
	default:
		return fmt.Errorf("query.api_version must be 1..4, got %q", c.Query.APIVersion)
	}
	if _, err := c.IndexFields(); err != nil {
		return err
	}
	return nil
}

// IndexFields converts the configured index fields to db definitions.
func (c *Config) IndexFields() ([]db.IndexField, error) {
	fields := make([]db.IndexField, 0, len(c.Index.Fields))
	for i, f := range c.Index.Fields {
		if !strings.HasPrefix(f.Path, "$.") {
			return nil, fmt.Errorf("index.fields[%d].path must start with \"$.\", got %q", i, f.Path)
		}
		if !db.IsValidIdentifier(f.Alias) {
			return nil, fmt.Errorf("index.fields[%d].alias is invalid: %q", i, f.Alias)
		}
		if f.Alias == "_id" || f.Alias == "_type" {
			return nil, fmt.Errorf("index.fields[%d].alias %q is reserved", i, f.Alias)
		}
		t, err := db.ParseIndexFieldType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("index.fields[%d].type: %w", i, err)
		}
		fields = append(fields, db.IndexField{Name: f.Path, Alias: f.Alias, Type: t})
	}
	return fields, nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
