package database

import (
	"fmt"

	"otp-order-manager/logger"
	"otp-order-manager/models/log"
	"otp-order-manager/models/order"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MemoryDSN keeps all data for the lifetime of the process only.
const MemoryDSN = "file::memory:?cache=shared"

// InitDB opens the in-memory store and migrates every model.
func InitDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		logger.Error("Failed to open the database", err)
		return nil, err
	}

	// A shared-cache memory database must not be split across connections.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := autoMigrate(db); err != nil {
		logger.Error("Failed to migrate the database", err)
		return nil, err
	}

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("In-memory database ready")

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	models := []interface{}{
		&order.Order{},
		&log.Log{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

func createIndexes(db *gorm.DB) error {
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)").Error; err != nil {
		return fmt.Errorf("failed to create order status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create order created_at index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}
	return nil
}
