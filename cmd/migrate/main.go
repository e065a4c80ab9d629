package main

import (
	"flag"
	"log"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
)

func main() {
	dropFirst := flag.Bool("reset", false, "Drop all tables before migrating")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if *dropFirst && cfg.Env == config.Production {
		log.Fatal("refusing to drop tables in production")
	}
	if *dropFirst {
		models := database.Models()
		for i := len(models) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(models[i]); err != nil {
				log.Fatalf("failed to drop table: %v", err)
			}
		}
		log.Println("Dropped all tables")
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	log.Println("All migrations applied successfully.")
}
