package main

import (
	"log"

	"github.com/sato4sk/items-api/config"
	"github.com/sato4sk/items-api/controllers"
	"github.com/sato4sk/items-api/database"
)

func main() {
	err := config.LoadEnvVars()

	if err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}

	db, err := database.ConnectToDB()

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	handler := controllers.NewHandler(db)
	router := controllers.NewRouter(handler)

	if err := router.Run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
