package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DemoOrgID is the seeded demo organization, used when neither the
// config file nor DEFAULT_ORG_ID names one.
const DemoOrgID = "f251c99a-05c1-4f81-b00d-e27cd09ca012"

type Config struct {
	APIBaseURL string `yaml:"api_base_url"`
	OrgID      string `yaml:"org_id"`

	RequestTimeout time.Duration `yaml:"-"`
	RawTimeout     string        `yaml:"request_timeout"`

	CacheTTL    time.Duration `yaml:"-"`
	RawCacheTTL string        `yaml:"cache_ttl"`

	AutoRefresh         *bool         `yaml:"auto_refresh"`
	AutoRefreshInterval time.Duration `yaml:"-"`
	RawRefreshInterval  string        `yaml:"auto_refresh_interval"`

	LogFile string    `yaml:"log_file"`
	Log     LogConfig `yaml:"log"`
	TUI     TUIConfig `yaml:"tui"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TUIConfig struct {
	RefreshInterval time.Duration `yaml:"-"`
	RawInterval     string        `yaml:"refresh_interval"`
}

// Load reads the YAML config at path, applies defaults and environment
// overrides, and validates. A missing file is not an error: the
// dashboard runs fine on defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// all defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// applyEnv layers the two environment variables the deployment sets
// over whatever the file said.
func (c *Config) applyEnv() {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		c.APIBaseURL = v
	}
	if v := os.Getenv("DEFAULT_ORG_ID"); v != "" {
		c.OrgID = v
	}
}

func (c *Config) setDefaults() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = "http://localhost:3000"
	}
	if c.OrgID == "" {
		c.OrgID = DemoOrgID
	}

	if c.RawTimeout == "" {
		c.RawTimeout = "5s"
	}
	d, err := time.ParseDuration(c.RawTimeout)
	if err != nil {
		return fmt.Errorf("parse request_timeout %q: %w", c.RawTimeout, err)
	}
	c.RequestTimeout = d

	if c.RawCacheTTL == "" {
		c.RawCacheTTL = "60s"
	}
	ttl, err := time.ParseDuration(c.RawCacheTTL)
	if err != nil {
		return fmt.Errorf("parse cache_ttl %q: %w", c.RawCacheTTL, err)
	}
	c.CacheTTL = ttl

	if c.AutoRefresh == nil {
		defaultTrue := true
		c.AutoRefresh = &defaultTrue
	}
	if c.RawRefreshInterval == "" {
		c.RawRefreshInterval = "5s"
	}
	interval, err := time.ParseDuration(c.RawRefreshInterval)
	if err != nil {
		return fmt.Errorf("parse auto_refresh_interval %q: %w", c.RawRefreshInterval, err)
	}
	c.AutoRefreshInterval = interval

	if c.LogFile == "" {
		c.LogFile = "logs/civicdash.log"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.TUI.RawInterval == "" {
		c.TUI.RawInterval = "1s"
	}
	tuiInterval, err := time.ParseDuration(c.TUI.RawInterval)
	if err != nil {
		return fmt.Errorf("parse tui.refresh_interval %q: %w", c.TUI.RawInterval, err)
	}
	c.TUI.RefreshInterval = tuiInterval

	return nil
}

func (c *Config) validate() error {
	if c.OrgID == "" {
		return fmt.Errorf("org_id required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RawTimeout)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must not be negative, got %s", c.RawCacheTTL)
	}
	if c.AutoRefreshInterval <= 0 {
		return fmt.Errorf("auto_refresh_interval must be positive, got %s", c.RawRefreshInterval)
	}
	if c.TUI.RefreshInterval <= 0 {
		return fmt.Errorf("tui.refresh_interval must be positive, got %s", c.TUI.RawInterval)
	}
	return nil
}
