package dbfx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackyeh168/club_ledger/src/internal/domain/shared"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/config"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/club_ledger/src/internal/infrastructure/persistence/schema"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(provideDB, persistence.NewGORMTransactionManager),
	fx.Invoke(migrate),
)

func provideDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := persistence.Open(persistence.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
		SlowQuery:    cfg.DBSlowQuery,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return persistence.Close(db)
		},
	})
	return db, nil
}

// migrate 建表，必要時寫入預設目錄
func migrate(cfg config.Config, db *gorm.DB, txManager shared.TransactionManager, logger *slog.Logger) error {
	if err := schema.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if !cfg.SeedCatalog {
		return nil
	}
	if err := schema.SeedCatalog(txManager, db); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	logger.Info("catalog seeded")
	return nil
}
