package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config 服務設定
type Config struct {
	AppEnv   string
	HTTPAddr string

	DBDriver       string
	DBDSN          string
	DBMaxOpenConns int
	DBSlowQuery    time.Duration

	LogLevel  string
	LogFormat string

	// PointsConversionRate 每 1 點所需的消費金額（TWD）
	PointsConversionRate int

	// SeedCatalog 啟動時寫入預設方案與獎勵
	SeedCatalog bool
}

const (
	defaultHTTPAddr       = ":8080"
	defaultDBDriver       = "sqlite"
	defaultDBDSN          = "file:club_ledger.db?_foreign_keys=on"
	defaultConversionRate = 100
)

// Load 讀取設定
//
// 順序：環境變數優先，其次為 .env 檔（檔案不存在時略過）。
// 未指定 envFiles 時讀取工作目錄下的 .env。
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	fileValues := map[string]string{}
	for _, path := range envFiles {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		for k, v := range values {
			if _, exists := fileValues[k]; !exists {
				fileValues[k] = v
			}
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileValues[key]
		return v, ok
	}
	return fromLookup(lookup)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		AppEnv:    get("APP_ENV", "development"),
		HTTPAddr:  get("HTTP_ADDR", defaultHTTPAddr),
		DBDriver:  strings.ToLower(get("DB_DRIVER", defaultDBDriver)),
		DBDSN:     get("DB_DSN", defaultDBDSN),
		LogLevel:  get("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(get("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.DBMaxOpenConns, err = strconv.Atoi(get("DB_MAX_OPEN_CONNS", "10")); err != nil {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS: %w", err)
	}
	if cfg.DBSlowQuery, err = time.ParseDuration(get("DB_SLOW_QUERY", "200ms")); err != nil {
		return Config{}, fmt.Errorf("DB_SLOW_QUERY: %w", err)
	}
	if cfg.PointsConversionRate, err = strconv.Atoi(get("POINTS_CONVERSION_RATE", strconv.Itoa(defaultConversionRate))); err != nil {
		return Config{}, fmt.Errorf("POINTS_CONVERSION_RATE: %w", err)
	}
	if cfg.SeedCatalog, err = strconv.ParseBool(get("SEED_CATALOG", "true")); err != nil {
		return Config{}, fmt.Errorf("SEED_CATALOG: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate 檢查設定值範圍
func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	if c.PointsConversionRate < 1 || c.PointsConversionRate > 1000 {
		return fmt.Errorf("POINTS_CONVERSION_RATE must be between 1 and 1000, got %d", c.PointsConversionRate)
	}
	if c.DBMaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.DBMaxOpenConns)
	}
	return nil
}

// IsProduction 是否為正式環境
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
