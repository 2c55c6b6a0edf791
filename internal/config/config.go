package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	UI       UIConfig       `mapstructure:"ui"`
	Log      LogConfig      `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// CatalogConfig points at an optional YAML listing file.
type CatalogConfig struct {
	SeedPath string `mapstructure:"seed_path"`
}

// WalletConfig selects the wallet provider.
type WalletConfig struct {
	Provider       string        `mapstructure:"provider"`
	Keyfile        string        `mapstructure:"keyfile"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CopyRevert       time.Duration `mapstructure:"copy_revert"`
	PlaceholderImage string        `mapstructure:"placeholder_image"`
}

// LogConfig controls the log file. Path "-" disables logging.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

const (
	ProviderSolanaKeyfile = "solana-keyfile"
	ProviderNone          = "none"
)

// Load reads configuration from .env, the config file and the environment.
// Env var overrides use prefix TOKENESTATE_.
func Load() (Config, error) {
	_ = godotenv.Load()

	home := os.Getenv("HOME")
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(home, ".local", "share", "tokenestate", "catalog.db"))
	v.SetDefault("catalog.seed_path", "")
	v.SetDefault("wallet.provider", ProviderSolanaKeyfile)
	v.SetDefault("wallet.keyfile", filepath.Join(home, ".config", "solana", "id.json"))
	v.SetDefault("wallet.connect_timeout", "0s")
	v.SetDefault("ui.copy_revert", "1.2s")
	v.SetDefault("ui.placeholder_image", "https://placehold.co/600x400/C0C0C0/white?text=Image+Not+Found")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "tokenestate", "tokenestate.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TOKENESTATE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "tokenestate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TOKENESTATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Wallet.Provider = strings.ToLower(strings.TrimSpace(c.Wallet.Provider))
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	switch c.Wallet.Provider {
	case ProviderSolanaKeyfile, ProviderNone:
	default:
		return fmt.Errorf("config: unknown wallet.provider %q", c.Wallet.Provider)
	}
	if c.Wallet.ConnectTimeout < 0 {
		return fmt.Errorf("config: wallet.connect_timeout must not be negative")
	}
	if c.UI.CopyRevert <= 0 {
		return fmt.Errorf("config: ui.copy_revert must be positive")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path required")
	}
	return nil
}

// Path is the file Load reads and Save writes.
func Path() string {
	if p := os.Getenv("TOKENESTATE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "tokenestate", "config.toml")
}

// Save writes the provided config to Path, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("catalog.seed_path", cfg.Catalog.SeedPath)
	v.Set("wallet.provider", cfg.Wallet.Provider)
	v.Set("wallet.keyfile", cfg.Wallet.Keyfile)
	v.Set("wallet.connect_timeout", cfg.Wallet.ConnectTimeout.String())
	v.Set("ui.copy_revert", cfg.UI.CopyRevert.String())
	v.Set("ui.placeholder_image", cfg.UI.PlaceholderImage)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
