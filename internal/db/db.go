package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campusmatch/backend/internal/config"
)

// NewDB initializes the database connection using DSN from config.
//
// TranslateError is on so that unique-key violations surface as
// gorm.ErrDuplicatedKey regardless of driver. The decision and match
// invariants depend on that: duplicate swipes and double reconciliation are
// resolved by the constraint, not by check-then-insert.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	// AutoMigrate ensures schema is in sync with models.
	if err := db.AutoMigrate(&Institution{}, &User{}, &Decision{}, &Match{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
