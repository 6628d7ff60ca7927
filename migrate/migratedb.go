package main

import (
	"log"

	"github.com/sato4sk/items-api/config"
	"github.com/sato4sk/items-api/database"
	"github.com/sato4sk/items-api/models"
)

func main() {
	// Load environment variables
	if err := config.LoadEnvVars(); err != nil {
		log.Fatalf("Error loading environment variables: %v", err)
	}

	// Connect to DB and get the local DB instance
	db, err := database.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Running database migrations...")

	err = db.AutoMigrate(
		&models.User{},
		&models.Item{},
	)

	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully!")
}
