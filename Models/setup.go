package Models

import (
	"log"
	"os"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Area{},
		&Employee{},
		&Material{},
	)

	// 2. Then tables referencing the base tables
	DB.AutoMigrate(
		&Task{}, // depends on Area and Employee
	)

	// 3. Finally tables hanging off tasks
	DB.AutoMigrate(
		&TaskPhoto{},
		&AuditLog{},
	)
}
