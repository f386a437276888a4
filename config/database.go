package config

import (
	"fmt"
	"time"

	"taskboard/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database connection and migrates the tasks table.
func InitDB(config Config) error {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case "mysql":
		dialector = mysql.Open(config.GetDBConnString())
	case "sqlite", "":
		dialector = sqlite.Open(config.DBPath)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", config.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := DB.AutoMigrate(&models.Task{}); err != nil {
		return fmt.Errorf("database migration failed: %v", err)
	}

	return nil
}
