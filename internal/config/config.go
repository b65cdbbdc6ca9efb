package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dharmasatrya/flightscanner/internal/models"
)

type Config struct {
	Search   models.SearchRequest `yaml:"search"`
	Sources  SourcesConfig        `yaml:"sources"`
	Settings SettingsConfig       `yaml:"settings"`
	Browser  BrowserConfig        `yaml:"browser"`
	Cache    CacheConfig          `yaml:"cache"`
	Server   ServerConfig         `yaml:"server"`
	History  HistoryConfig        `yaml:"history"`
}

type SourcesConfig struct {
	Primary  string   `yaml:"primary"`
	Fallback []string `yaml:"fallback"`
	DemoMode bool     `yaml:"demo_mode"`
}

type SettingsConfig struct {
	MaxAttempts    int      `yaml:"max_attempts"`
	AttemptTimeout Duration `yaml:"attempt_timeout"`
	Backoff        string   `yaml:"backoff"`
	BackoffDelay   Duration `yaml:"backoff_delay"`
	FallbackPolicy string   `yaml:"fallback_policy"`
}

// Duration accepts "10s" style values in YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type BrowserConfig struct {
	Headless  bool   `yaml:"headless"`
	UserAgent string `yaml:"user_agent"`
}

type CacheConfig struct {
	Enabled   bool     `yaml:"enabled"`
	RedisHost string   `yaml:"redis_host"`
	RedisPort string   `yaml:"redis_port"`
	TTL       Duration `yaml:"ttl"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads the YAML config file, fills defaults and applies environment
// overrides for the deployment-dependent settings.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg Config
	cfg.Browser.Headless = true
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if cfg.Sources.Primary == "" {
		return nil, fmt.Errorf("config %s: sources.primary is required", path)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Settings.MaxAttempts <= 0 {
		c.Settings.MaxAttempts = 3
	}
	if c.Settings.AttemptTimeout <= 0 {
		c.Settings.AttemptTimeout = Duration(10 * time.Second)
	}
	if c.Settings.Backoff == "" {
		c.Settings.Backoff = "fixed"
	}
	if c.Settings.BackoffDelay <= 0 {
		c.Settings.BackoffDelay = Duration(2 * time.Second)
	}
	if c.Settings.FallbackPolicy == "" {
		c.Settings.FallbackPolicy = "first_reachable"
	}
	if c.Cache.RedisHost == "" {
		c.Cache.RedisHost = "localhost"
	}
	if c.Cache.RedisPort == "" {
		c.Cache.RedisPort = "6379"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = Duration(5 * time.Minute)
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.History.Path == "" {
		c.History.Path = "data/history.db"
	}
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Cache.Enabled = getEnvBool("CACHE_ENABLED", c.Cache.Enabled)
	c.Cache.RedisHost = getEnv("REDIS_HOST", c.Cache.RedisHost)
	c.Cache.RedisPort = getEnv("REDIS_PORT", c.Cache.RedisPort)
	c.Cache.TTL = Duration(getEnvDuration("REDIS_TTL", c.Cache.TTL.Std()))
	c.Sources.DemoMode = getEnvBool("DEMO_MODE", c.Sources.DemoMode)
}

// Chain returns the source names in priority order.
func (c *Config) Chain() []string {
	chain := []string{c.Sources.Primary}
	for _, name := range c.Sources.Fallback {
		if name != "" {
			chain = append(chain, name)
		}
	}
	return chain
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
