// Package config loads service configuration.
//
// Values come from an optional config.yaml, overridden by environment
// variables (DATABASE_URL, REDIS_ADDR, RESEND_API_KEY, ...), with defaults
// for everything that is not a credential. Required credentials are checked
// at load time so a misconfigured deployment fails before any I/O.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Temporal TemporalConfig `mapstructure:"temporal"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig contains HTTP trigger server settings.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// TemporalConfig contains Temporal client settings.
type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
}

// DatabaseConfig contains PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// DSN returns the PostgreSQL connection string.
func (c DatabaseConfig) DSN() string {
	return c.URL
}

// RedisConfig contains suppression-list store settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// EmailConfig contains email provider and branding settings.
type EmailConfig struct {
	// Provider selects the dispatcher: "resend" or "smtp".
	Provider     string     `mapstructure:"provider"`
	From         string     `mapstructure:"from"`
	AppName      string     `mapstructure:"app_name"`
	BaseURL      string     `mapstructure:"base_url"`
	ResendAPIKey string     `mapstructure:"resend_api_key"`
	SMTP         SMTPConfig `mapstructure:"smtp"`
}

// SMTPConfig contains settings for the SMTP dispatcher.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"server.port":          "SERVER_PORT",
	"temporal.host_port":   "TEMPORAL_HOSTPORT",
	"temporal.namespace":   "TEMPORAL_NAMESPACE",
	"database.url":         "DATABASE_URL",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASSWORD",
	"redis.db":             "REDIS_DB",
	"email.provider":       "EMAIL_PROVIDER",
	"email.from":           "EMAIL_FROM",
	"email.app_name":       "EMAIL_APP_NAME",
	"email.base_url":       "APP_BASE_URL",
	"email.resend_api_key": "RESEND_API_KEY",
	"email.smtp.host":      "SMTP_HOST",
	"email.smtp.port":      "SMTP_PORT",
	"email.smtp.username":  "SMTP_USERNAME",
	"email.smtp.password":  "SMTP_PASSWORD",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

// Load reads configuration and validates required credentials.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	setDefaults(v)
	for key, envVar := range envBindings {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("bind %s: %w", envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("database.url", "")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.from", "no-reply@barbar.coach")
	v.SetDefault("email.app_name", "Barbar Coach")
	v.SetDefault("email.base_url", "https://barbar.coach")
	v.SetDefault("email.resend_api_key", "")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate reports every missing required value at once.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Redis.Addr == "" {
		missing = append(missing, "REDIS_ADDR")
	}

	switch c.Email.Provider {
	case "resend":
		if c.Email.ResendAPIKey == "" {
			missing = append(missing, "RESEND_API_KEY")
		}
	case "smtp":
		if c.Email.SMTP.Host == "" {
			missing = append(missing, "SMTP_HOST")
		}
	default:
		return fmt.Errorf("unsupported email provider %q (expected \"resend\" or \"smtp\")", c.Email.Provider)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
