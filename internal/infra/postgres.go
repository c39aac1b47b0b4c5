package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"mboga/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {
	dsn := os.Getenv("POSTGRES_URL")

	// TranslateError maps driver unique-violations onto gorm.ErrDuplicatedKey,
	// which the order-number retry depends on.
	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	return connectionPool
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&db_models.Account{},
		&db_models.Product{},
		&db_models.UnpaidOrder{},
		&db_models.PaidOrder{},
	)
	if err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
