package configs

import (
	"fmt"

	"github.com/alexandru1c/refeelv2/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

// ConnectionDB เปิด DB ตาม DB_DRIVER แล้วเก็บไว้เป็น global
func ConnectionDB(cfg *Config) error {
	database, err := OpenDatabase(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return err
	}
	db = database
	return nil
}

// OpenDatabase รองรับ sqlite (ค่าเริ่มต้น) และ postgres
func OpenDatabase(driver, source string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	var dial gorm.Dialector
	switch driver {
	case "", "sqlite":
		dial = sqlite.Open(source)
	case "postgres":
		dial = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	database, err := gorm.Open(dial, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	return database, nil
}

func SetupDatabase(database *gorm.DB) error {
	// Migrate the schema
	return database.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.Product{}, &entity.RewardProduct{},
		&entity.Order{}, &entity.OrderLineItem{},
		&entity.RewardOrder{}, &entity.RewardLineItem{},
	)
}
