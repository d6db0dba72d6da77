package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Backend struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
		Mock    bool          `yaml:"mock"`
	} `yaml:"backend"`
	Storage struct {
		Driver string `yaml:"driver"` // sqlite, file or memory
		Path   string `yaml:"path"`
	} `yaml:"storage"`
	Recorder struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"recorder"`
	Display struct {
		Currency      string        `yaml:"currency"`
		DefaultTicker string        `yaml:"default_ticker"`
		NoticeDelay   time.Duration `yaml:"notice_delay"`
		GlamourStyle  string        `yaml:"glamour_style"`
		Width         int           `yaml:"width"`
	} `yaml:"display"`
	Schedule struct {
		ValuationCron string `yaml:"valuation_cron"`
		RefreshCron   string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
		File   string `yaml:"file"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Path returns $CONFIG_PATH or DefaultPath.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides and fills defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCKXPERT_BASE_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("STOCKXPERT_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("STOCKXPERT_TIMEOUT: %w", err)
		}
		cfg.Backend.Timeout = d
	}
	if v := os.Getenv("STOCKXPERT_MOCK"); v != "" {
		mock, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("STOCKXPERT_MOCK: %w", err)
		}
		cfg.Backend.Mock = mock
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("STORAGE_DRIVER"); v != "" {
		cfg.Storage.Driver = v
	}
	if v := os.Getenv("STORAGE_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Recorder.SQLitePath = v
	}
	if v := os.Getenv("STOCKXPERT_CURRENCY"); v != "" {
		cfg.Display.Currency = v
	}
	if v := os.Getenv("CRON_VALUATION"); v != "" {
		cfg.Schedule.ValuationCron = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Path == "" {
		switch cfg.Storage.Driver {
		case "file":
			cfg.Storage.Path = "data/portfolio.json"
		default:
			cfg.Storage.Path = "data/stockxpert.db"
		}
	}
	if cfg.Display.Currency == "" {
		cfg.Display.Currency = money.INR
	}
	if cfg.Display.DefaultTicker == "" {
		cfg.Display.DefaultTicker = "RELIANCE"
	}
	if cfg.Display.NoticeDelay == 0 {
		cfg.Display.NoticeDelay = 5 * time.Second
	}
	if cfg.Display.GlamourStyle == "" {
		cfg.Display.GlamourStyle = "dark"
	}
	if cfg.Display.Width == 0 {
		cfg.Display.Width = 100
	}
	if cfg.Schedule.ValuationCron == "" {
		cfg.Schedule.ValuationCron = "0 */5 * * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be positive")
	}
	switch c.Storage.Driver {
	case "sqlite", "file", "memory":
	default:
		return fmt.Errorf("storage.driver must be sqlite, file or memory, got %q", c.Storage.Driver)
	}
	if money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("display.currency %q is not an ISO 4217 code", c.Display.Currency)
	}
	if c.Display.NoticeDelay < 0 {
		return fmt.Errorf("display.notice_delay must not be negative")
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, expr := range map[string]string{
		"schedule.valuation_cron": c.Schedule.ValuationCron,
		"schedule.refresh_cron":   c.Schedule.RefreshCron,
	} {
		if expr == "" {
			continue
		}
		if _, err := parser.Parse(expr); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
