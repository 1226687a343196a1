package bootstrap

import (
	"log/slog"

	"github.com/tervalon/delveforge/internal/config"
	"github.com/tervalon/delveforge/internal/logger"
)

// SetupLogger installs the application logger from config and logs the
// startup banner.
func SetupLogger(cfg *config.Config) {
	logCfg := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		cfg.Environment == "dev",
	)
	logger.InitLogger(logCfg)

	slog.Info(LogMsgLoggingInitialized, "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port)
}
