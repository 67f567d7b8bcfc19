package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultsConfig lists the category and vendor names seeded for every
// new user. Empty lists fall back to the built-in sets below.
type DefaultsConfig struct {
	Categories []string `mapstructure:"categories"`
	Vendors    []string `mapstructure:"vendors"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

var (
	builtinCategories = []string{
		"Income", "Groceries", "Dining", "Housing", "Utilities",
		"Transportation", "Entertainment", "Healthcare", "Other",
	}
	builtinVendors = []string{"N/A", "Employer", "Landlord"}
)

// Load reads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	// environment overrides, e.g. BB_SERVER_PORT=9000
	v.SetEnvPrefix("BB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(c.Defaults.Categories) == 0 {
		c.Defaults.Categories = builtinCategories
	}
	if len(c.Defaults.Vendors) == 0 {
		c.Defaults.Vendors = builtinVendors
	}

	return &c, nil
}
