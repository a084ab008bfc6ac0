package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// Database wraps the shared connection pool
type Database struct {
	DB *gorm.DB
}

// ConnectDatabase opens the pooled connection described by cfg.
// URLs prefixed with sqlite:// (or ending in .db) use the embedded sqlite driver,
// everything else is handed to the PostgreSQL driver.
func ConnectDatabase(cfg DatabaseConfig) (*Database, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("failed to connect to database: DATABASE_URL is empty")
	}

	db, err := gorm.Open(dialectorFor(cfg.URL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.MaxPoolSize > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		sqlDB.SetMaxIdleConns(cfg.MinPoolSize)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info().Str("driver", db.Dialector.Name()).Msg("Database connection established successfully")
	return &Database{DB: db}, nil
}

// NewDatabase wraps an already opened handle
func NewDatabase(db *gorm.DB) *Database {
	return &Database{DB: db}
}

// Migrate creates or updates every table the API owns
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping verifies the connection is usable
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(url string) gorm.Dialector {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://"))
	case strings.HasSuffix(url, ".db"), strings.HasPrefix(url, "file:"), url == ":memory:":
		return sqlite.Open(url)
	default:
		return postgres.Open(url)
	}
}
