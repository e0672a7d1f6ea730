package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "TAREFAS"

// ConfigFileEnv names the environment variable that points at an explicit config file.
const ConfigFileEnv = "TAREFAS_CONFIG_FILE"

// DefaultImportSourceURL is the public todo feed used when no source is configured.
const DefaultImportSourceURL = "https://jsonplaceholder.typicode.com/todos"

// keys without defaults must be bound explicitly for AutomaticEnv to reach Unmarshal.
var envOnlyKeys = []string{
	"database.url",
	"auth.jwt_secret",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Config file is optional: explicit path first, then ./config.yaml or ./config/config.yaml
	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of cfg.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("auth.algorithm", "HS256")
	v.SetDefault("auth.token_lifetime_minutes", 30)
	v.SetDefault("auth.clock_skew", time.Duration(0))
	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.user_store", "static")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.list_ttl", 60*time.Second)
	v.SetDefault("cache.item_ttl", 30*time.Second)

	v.SetDefault("importer.source_url", DefaultImportSourceURL)
	v.SetDefault("importer.timeout", 10*time.Second)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.login_per_second", 1.0)
	v.SetDefault("rate_limit.login_burst", 5)
}
