// Package config loads service settings from an optional YAML file,
// MODERATION_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "MODERATION"

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Log        LogConfig
	Moderation ModerationConfig
	CSRF       CSRFConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LogConfig struct {
	Level       string
	Environment string
}

type ModerationConfig struct {
	RuleCacheTTL time.Duration
	SeedDefaults bool
}

type CSRFConfig struct {
	TokenTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.path", "./moderation.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.environment", "production")
	v.SetDefault("moderation.rule_cache_ttl", 30*time.Second)
	v.SetDefault("moderation.seed_defaults", true)
	v.SetDefault("csrf.token_ttl", 30*time.Minute)
}

// Load reads configuration. An empty path skips the file; a path that cannot
// be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Environment: v.GetString("log.environment"),
		},
		Moderation: ModerationConfig{
			RuleCacheTTL: v.GetDuration("moderation.rule_cache_ttl"),
			SeedDefaults: v.GetBool("moderation.seed_defaults"),
		},
		CSRF: CSRFConfig{
			TokenTTL: v.GetDuration("csrf.token_ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Moderation.RuleCacheTTL < 0 {
		errs = append(errs, errors.New("moderation.rule_cache_ttl must not be negative"))
	}
	if c.CSRF.TokenTTL <= 0 {
		errs = append(errs, errors.New("csrf.token_ttl must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
