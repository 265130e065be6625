package main

import (
	"database/sql"
	"fmt"
	"geo-forensics-service/internal/adapters/cache"
	"geo-forensics-service/internal/config"
	"geo-forensics-service/internal/platform/db"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres landmark cache: it creates the schema and,
// when SEED_PATH is set, loads pre-identified landmarks from JSON.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	seedPath := config.Get("SEED_PATH", "")
	if err := initAndSeed(db, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(db *sql.DB, seedPath string) error {
	log.Println("Initializing landmark cache schema...")
	if err := cache.InitSchema(db); err != nil {
		return fmt.Errorf("init and seed: schema initialization: %w", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		log.Println("SEED_PATH not set, skipping seed.")
		return nil
	}

	log.Println("Seeding landmark cache...")
	if err := cache.SeedFromJSON(db, seedPath); err != nil {
		return fmt.Errorf("init and seed: seeding: %w", err)
	}
	log.Println("Seeding complete.")

	return nil
}
