package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/tarefas-api/internal/config"
	"github.com/phrazzld/tarefas-api/internal/platform/logger"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the configured slog logger as the default and
// logs a summary of the loaded configuration.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("user_store", cfg.Auth.UserStore),
		slog.Bool("cache_enabled", cfg.Cache.Enabled))
	l.Debug("Database configuration", slog.Bool("url_present", cfg.Database.URL != ""))

	return l, nil
}
