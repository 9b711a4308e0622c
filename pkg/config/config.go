package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultProviderBaseURL = "https://api.groq.com/openai/v1"
	defaultProviderModel   = "llama-3.3-70b-versatile"
)

// Default configuration values exported for documentation and validation
const (
	DefaultEntryTimeout        = 10 * time.Second
	DefaultTitleTimeout        = 5 * time.Second
	DefaultInsightTimeout      = 60 * time.Second
	DefaultBiographyTimeout    = 30 * time.Second
	DefaultCacheTTL            = time.Hour
	DefaultMaxInsightEntries   = 20
	DefaultMaxBiographyEntries = 30
	DefaultListenAddress       = "127.0.0.1:8484"
)

// Config represents the complete inkwell configuration
type Config struct {
	Provider Provider      `yaml:"provider"`
	Timeouts TimeoutConfig `yaml:"timeouts"`
	Cache    CacheConfig   `yaml:"cache"`
	Limits   LimitConfig   `yaml:"limits"`
	Server   ServerConfig  `yaml:"server"`
	Storage  StorageConfig `yaml:"storage"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Provider configures the chat-completion endpoint
type Provider struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	// NetworkLogs enables raw request/response capture for debugging
	NetworkLogs bool `yaml:"network_logs"`
}

// TimeoutConfig holds per-task model deadlines
type TimeoutConfig struct {
	Entry     time.Duration `yaml:"entry"`
	Title     time.Duration `yaml:"title"`
	Insight   time.Duration `yaml:"insight"`
	Biography time.Duration `yaml:"biography"`
}

// CacheConfig configures the response cache
type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// LimitConfig caps how many entries feed the long-running tasks
type LimitConfig struct {
	MaxEntriesForInsights  int `yaml:"max_entries_for_insights"`
	MaxEntriesForBiography int `yaml:"max_entries_for_biography"`
}

// ServerConfig configures the HTTP gateway
type ServerConfig struct {
	Address       string `yaml:"address"`
	SessionSecret string `yaml:"session_secret"`
}

// StorageConfig configures the record store
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures structured logging
type LoggingConfig struct {
	Dir   string `yaml:"dir"`
	Level string `yaml:"level"`
}

// DefaultConfig returns a config populated with defaults
func DefaultConfig() *Config {
	return &Config{
		Provider: Provider{
			BaseURL: defaultProviderBaseURL,
			Model:   defaultProviderModel,
		},
		Timeouts: TimeoutConfig{
			Entry:     DefaultEntryTimeout,
			Title:     DefaultTitleTimeout,
			Insight:   DefaultInsightTimeout,
			Biography: DefaultBiographyTimeout,
		},
		Cache: CacheConfig{DefaultTTL: DefaultCacheTTL},
		Limits: LimitConfig{
			MaxEntriesForInsights:  DefaultMaxInsightEntries,
			MaxEntriesForBiography: DefaultMaxBiographyEntries,
		},
		Server: ServerConfig{Address: DefaultListenAddress},
		Storage: StorageConfig{
			Path: filepath.Join(defaultDataDir(), "inkwell.db"),
		},
		Logging: LoggingConfig{
			Dir:   filepath.Join(defaultDataDir(), "logs"),
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return ".inkwell"
	}
	return filepath.Join(home, ".inkwell")
}

// Load loads configuration from ~/.inkwell/config.yaml plus environment
// overrides.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	path := filepath.Join(defaultDataDir(), "config.yaml")
	if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("INKWELL_PROVIDER_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("INKWELL_PROVIDER_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("INKWELL_PROVIDER_MODEL"); v != "" {
		cfg.Provider.Model = v
	}
	if v := os.Getenv("INKWELL_LISTEN_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("INKWELL_SESSION_SECRET"); v != "" {
		cfg.Server.SessionSecret = v
	}
	if v := os.Getenv("INKWELL_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("INKWELL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if d, ok := envDuration("INKWELL_ENTRY_TIMEOUT"); ok {
		cfg.Timeouts.Entry = d
	}
	if d, ok := envDuration("INKWELL_TITLE_TIMEOUT"); ok {
		cfg.Timeouts.Title = d
	}
	if d, ok := envDuration("INKWELL_INSIGHT_TIMEOUT"); ok {
		cfg.Timeouts.Insight = d
	}
	if d, ok := envDuration("INKWELL_BIOGRAPHY_TIMEOUT"); ok {
		cfg.Timeouts.Biography = d
	}
	if d, ok := envDuration("INKWELL_CACHE_TTL"); ok {
		cfg.Cache.DefaultTTL = d
	}
	if n, ok := envInt("INKWELL_MAX_INSIGHT_ENTRIES"); ok {
		cfg.Limits.MaxEntriesForInsights = n
	}
	if n, ok := envInt("INKWELL_MAX_BIOGRAPHY_ENTRIES"); ok {
		cfg.Limits.MaxEntriesForBiography = n
	}
}

func envDuration(key string) (time.Duration, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	// Accept bare seconds as well as Go duration strings
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, true
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, true
	}
	return 0, false
}

func envInt(key string) (int, bool) {
	raw := os.Getenv(key)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url cannot be empty")
	}
	if c.Provider.Model == "" {
		return fmt.Errorf("provider.model cannot be empty")
	}
	if c.Timeouts.Entry <= 0 || c.Timeouts.Title <= 0 || c.Timeouts.Insight <= 0 || c.Timeouts.Biography <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.Cache.DefaultTTL <= 0 {
		return fmt.Errorf("cache.default_ttl must be positive")
	}
	if c.Limits.MaxEntriesForInsights <= 0 {
		return fmt.Errorf("limits.max_entries_for_insights must be positive")
	}
	if c.Limits.MaxEntriesForBiography <= 0 {
		return fmt.Errorf("limits.max_entries_for_biography must be positive")
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server.address cannot be empty")
	}
	return nil
}
