package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Nyagar-Abraham/Finance-app/config"
	"github.com/Nyagar-Abraham/Finance-app/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open applies every pending migration
	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db.Close()

	fmt.Println("Migrations completed successfully!")
	os.Exit(0)
}
