// Package db opens GORM connections for the SQL storage backend.
package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnsupportedDriver is returned for a driver name other than sqlite, mysql or postgres.
var ErrUnsupportedDriver = errors.New("db: unsupported driver")

// Opts configures the connection pool.
type Opts struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	ConnectTimeout     time.Duration
	LogLevel           string
}

// Opener opens a database for a DSN. It exists so retries can be tested.
type Opener func(dsn string) (*gorm.DB, error)

const retryInterval = 3 * time.Second

// Dialector returns the GORM dialector for driver.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Open connects with retries and applies pool settings.
func Open(o Opts, l *zap.Logger) (*gorm.DB, error) {
	if _, err := Dialector(o.Driver, o.DSN); err != nil {
		return nil, err
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(gormLogLevel(o.LogLevel))}
	opener := func(dsn string) (*gorm.DB, error) {
		dial, _ := Dialector(o.Driver, dsn)
		return gorm.Open(dial, cfg)
	}

	timeout := o.ConnectTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	gdb, err := ConnectWithRetry(o.DSN, timeout, retryInterval, opener, l)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)
	return gdb, nil
}

// ConnectWithRetry calls opener until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout, interval time.Duration, opener Opener, l *zap.Logger) (*gorm.DB, error) {
	if l == nil {
		l = zap.NewNop()
	}
	deadline := time.Now().Add(timeout)
	for {
		gdb, err := opener(dsn)
		if err == nil {
			return gdb, nil
		}
		if time.Now().Add(interval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		l.Warn("db connect failed, retrying", zap.Error(err), zap.Duration("in", interval))
		time.Sleep(interval)
	}
}

func gormLogLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
