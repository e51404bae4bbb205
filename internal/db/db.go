package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ldagroup/timetracking/internal/config"
	"github.com/ldagroup/timetracking/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	dialector := postgres.Open(cfg.DBUrl)
	if cfg.DBUrl == "" {
		log.Printf("DATABASE_URL not set, using sqlite file %s", cfg.SQLitePath)
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := Open(dialector)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db
}

// Open connects and migrates. Duplicate key errors are translated to
// gorm.ErrDuplicatedKey for every dialect.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Worker{},
		&models.Job{},
		&models.TimeEntry{},
		&models.Material{},
		&models.Quote{},
		&models.QuotePhoto{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// At most one open entry per worker. Both postgres and sqlite support
	// partial indexes.
	if err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_one_open
		ON time_entries (worker_id)
		WHERE clock_out IS NULL
	`).Error; err != nil {
		return fmt.Errorf("failed to create open entry index: %w", err)
	}

	return nil
}
