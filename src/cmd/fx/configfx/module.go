package configfx

import (
	"fmt"
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/config"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/logging"
	"go.uber.org/fx"
)

var Module = fx.Provide(provideConfig, provideLogger)

func provideConfig() (config.Config, error) {
	return config.Load()
}

func provideLogger(cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse LOG_LEVEL: %w", err)
	}
	logger := logging.New(level, cfg.LogFormat).With("app_env", cfg.AppEnv)
	slog.SetDefault(logger)
	return logger, nil
}
