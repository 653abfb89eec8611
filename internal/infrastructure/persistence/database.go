package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database owns the GORM handle and the pool underneath it
type Database struct {
	DB  *gorm.DB
	sql *sql.DB
}

// Open connects to Postgres, sizes the pool from cfg and pings once before
// returning.
func Open(ctx context.Context, cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	d, err := wrap(db)
	if err != nil {
		return nil, err
	}

	d.sql.SetMaxOpenConns(cfg.MaxOpenConns)
	d.sql.SetMaxIdleConns(cfg.MaxIdleConns)
	d.sql.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	d.sql.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := d.sql.PingContext(ctx); err != nil {
		_ = d.sql.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

func wrap(db *gorm.DB) (*Database, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return &Database{DB: db, sql: sqlDB}, nil
}

// SQL exposes the pool for migrations and pool metrics
func (d *Database) SQL() *sql.DB {
	return d.sql
}

// Check is the readiness check. A failed ping reports UNAVAILABLE along with
// how many connections were busy at the time.
func (d *Database) Check(ctx context.Context) error {
	if err := d.sql.PingContext(ctx); err != nil {
		stats := d.sql.Stats()
		return shared.WrapDomainError(shared.CodeUnavailable,
			fmt.Sprintf("database unreachable (%d/%d connections in use)", stats.InUse, stats.MaxOpenConnections), err)
	}
	return nil
}

func (d *Database) Close() error {
	return d.sql.Close()
}
