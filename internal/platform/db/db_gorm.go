// Package db はDATABASE_URLからのストレージ選択とGORM接続を提供します。
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quote_backend/internal/feature/auth/domain/entity"
	quoteadapters "quote_backend/internal/feature/quotes/adapters"
)

// Driver identifies the storage backend selected by DATABASE_URL.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMongo    Driver = "mongodb"
)

// ErrUnsupportedScheme is returned for a DATABASE_URL whose scheme selects no backend.
var ErrUnsupportedScheme = errors.New("unsupported DATABASE_URL scheme")

// retryInterval は接続リトライの間隔です。
var retryInterval = 3 * time.Second

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// ParseURL はDATABASE_URLのスキームからドライバーとドライバー向けDSNを決定します。
//
//   - postgres:// postgresql://  → PostgreSQL（URLをそのまま渡す）
//   - mongodb:// mongodb+srv://  → MongoDB（URLをそのまま渡す）
//   - sqlite://path              → SQLite（pathのみ）
//   - file:...                   → SQLite（そのまま）
func ParseURL(url string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres, url, nil
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return DriverMongo, url, nil
	case strings.HasPrefix(url, "sqlite://"):
		path := strings.TrimPrefix(url, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("%w: sqlite url has no path", ErrUnsupportedScheme)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(url, "file:"):
		return DriverSQLite, url, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, redact(url))
	}
}

// OpenerFor returns the gorm opener for a SQL driver.
// TranslateError makes unique violations surface as gorm.ErrDuplicatedKey.
func OpenerFor(driver Driver) (Opener, error) {
	cfg := &gorm.Config{TranslateError: true}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), cfg)
		}, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) {
			db, err := gorm.Open(sqlite.Open(dsn), cfg)
			if err != nil {
				return nil, err
			}
			// SQLiteは書き込みが1接続のみ
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
			return db, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a SQL backend", ErrUnsupportedScheme, driver)
	}
}

// ConnectWithRetry はタイムアウトまで一定間隔で接続を再試行します。
// ctxがキャンセルされた場合（起動中のSIGTERMなど）は待機を打ち切って直ちに返ります。
func ConnectWithRetry(ctx context.Context, dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if !time.Now().Before(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)

		timer := time.NewTimer(retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("DB connect aborted: %w (last error: %v)", ctx.Err(), err)
		case <-timer.C:
		}
	}
}

// Migrate はユーザーと名言のテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&quoteadapters.QuoteCollectionModel{},
		&quoteadapters.QuoteEntryModel{},
	)
}

// OpenSQL は接続（リトライ付き）とマイグレーションを行います。
func OpenSQL(ctx context.Context, driver Driver, dsn string, timeout time.Duration, runMigrations bool) (*gorm.DB, error) {
	opener, err := OpenerFor(driver)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(ctx, dsn, timeout, opener)
	if err != nil {
		return nil, err
	}
	if runMigrations {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	slog.Info("database connected", "driver", string(driver))
	return db, nil
}

// redact hides anything that looks like credentials in a URL for error messages.
func redact(url string) string {
	if at := strings.LastIndex(url, "@"); at >= 0 {
		if scheme := strings.Index(url, "://"); scheme >= 0 && scheme < at {
			return url[:scheme+3] + "***" + url[at:]
		}
	}
	return url
}
