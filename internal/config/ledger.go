package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/the-ledger-must-balance/internal/common"
	"github.com/spf13/viper"
)

// Default values for the ledger configuration.
const (
	DefaultDriver    = "json"
	DefaultCacheSize = 256
	DefaultLogLevel  = "info"
	DefaultLogFormat = "console"
)

// Ledger holds the resolved runtime configuration.
type Ledger struct {
	Driver    string
	DataPath  string
	User      string
	Password  string
	LogLevel  string
	LogFormat string
	CacheSize int
}

// DefaultDataPath returns the default ledger document location.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "ledger.json"
	}
	return filepath.Join(home, ".local", "share", "ledger", "ledger.json")
}

// DefaultConfigDir returns the directory searched for config.yaml.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "ledger")
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", DefaultDriver)
	v.SetDefault("storage.path", DefaultDataPath())
	v.SetDefault("forecast.cache_size", DefaultCacheSize)
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// LoadLedgerConfig loads the ledger configuration from v.
// It follows this precedence:
// 1. Viper configuration (flags, config file, LEDGER_ env vars)
// 2. Short environment variables (LEDGER_DATA, LEDGER_USER, LEDGER_PASSWORD)
// 3. Default values
func LoadLedgerConfig(v *viper.Viper) (*Ledger, error) {
	cfg := Ledger{
		Driver:    v.GetString("storage.driver"),
		DataPath:  v.GetString("storage.path"),
		User:      v.GetString("session.user"),
		Password:  v.GetString("session.password"),
		CacheSize: v.GetInt("forecast.cache_size"),
		LogLevel:  v.GetString("logging.level"),
		LogFormat: v.GetString("logging.format"),
	}

	if cfg.DataPath == "" || cfg.DataPath == DefaultDataPath() {
		if p := os.Getenv("LEDGER_DATA"); p != "" {
			cfg.DataPath = p
		}
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("LEDGER_USER")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("LEDGER_PASSWORD")
	}

	if cfg.Driver == "" {
		cfg.Driver = DefaultDriver
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	cfg.DataPath = ExpandPath(cfg.DataPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values no command can work with.
func (c Ledger) Validate() error {
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: forecast.cache_size must be positive, got %d", common.ErrInvalidConfig, c.CacheSize)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, c.LogFormat)
	}
	if c.DataPath == "" {
		return fmt.Errorf("%w: storage.path", common.ErrMissingConfig)
	}
	return nil
}
