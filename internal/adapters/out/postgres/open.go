package postgres

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewLogger returns a GORM logger writing to w at the given level. Lookups
// that find nothing are expected (an order without an assignment, say) and
// are not reported.
func NewLogger(w logger.Writer, level logger.LogLevel) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects to the database. Driver errors are translated so that
// unique violations surface as gorm.ErrDuplicatedKey. A nil gormLog logs
// warnings and errors to stderr.
//
// SQLite serialises writers, so its pool is limited to one connection; a
// transaction then holds the database until it ends.
func Open(driver, dsn string, gormLog logger.Interface) (*gorm.DB, error) {
	if gormLog == nil {
		gormLog = NewLogger(log.New(os.Stderr, "", log.LstdFlags), logger.Warn)
	}
	cfg := &gorm.Config{TranslateError: true, Logger: gormLog}

	switch driver {
	case DriverPostgres, "":
		return gorm.Open(gormpostgres.Open(dsn), cfg)
	case DriverSQLite:
		db, err := gorm.Open(sqlite.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// PostgresDSN builds a key/value connection string.
func PostgresDSN(host, port, user, password, name, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslMode)
}
