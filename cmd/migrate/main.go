package main

import (
	"flag"
	"log"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/ceadash/cea-dashboard/internal/infrastructure/database"
	"github.com/ceadash/cea-dashboard/pkg/config"
)

func main() {
	direction := flag.String("direction", "up", "migration direction: up or down")
	limit := flag.Int("limit", 0, "max migrations to apply (0 = all)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database using GORM
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	migrations := &migrate.FileMigrationSource{
		Dir: "migrations",
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database connection: %v", err)
	}

	dir := migrate.Up
	if *direction == "down" {
		dir = migrate.Down
	}

	n, err := migrate.ExecMax(sqlDB, "postgres", migrations, dir, *limit)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	log.Printf("✅ Successfully applied %d migration(s)!\n", n)
}
