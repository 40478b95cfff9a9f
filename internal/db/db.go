package db

import (
	"log"
	"time"

	"github.com/bellenoire/salon-api/internal/config"
	"github.com/bellenoire/salon-api/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
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

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate for every model and installs the
// double-booking guard: only one active appointment may hold a
// (worker, date, time) triple. AutoMigrate cannot express a partial
// index, so it is raw DDL.
func Migrate(db *gorm.DB) error {
	if err := autoMigrate(db); err != nil {
		return err
	}

	return db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_active_slot
        ON appointments (worker_id, date, time)
        WHERE status IN ('pending', 'confirmed', 'in_progress')
    `).Error
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ClientProfile{},
		&models.WorkerProfile{},
		&models.Service{},
		&models.WorkerSchedule{},
		&models.Appointment{},
		&models.LoyaltyTransaction{},
		&models.Notification{},
		&models.Sale{},
		&models.SaleItem{},
		&models.DiscountCode{},
		&models.InventoryItem{},
		&models.AuditLog{},
	)
}
