package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 資料庫連線設定
type Options struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	SlowQuery    time.Duration
	Logger       *slog.Logger
}

// Open 依 Driver 開啟資料庫連線
//
// GORM 的 SQL 紀錄導向 slog（warn 等級），只記錄慢查詢與錯誤。
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(opts.DSN)
	case DriverPostgres:
		dialector = postgres.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGORMLogger(opts.Logger, opts.SlowQuery),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.Driver == DriverSQLite {
		// SQLite 只允許單一寫入者
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Close 關閉底層連線
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func newGORMLogger(log *slog.Logger, slow time.Duration) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return logger.New(
		slog.NewLogLogger(log.With("component", "gorm").Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
