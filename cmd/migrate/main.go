package main

import (
	"log"
	"os"

	"tobago-concierge-be/internal/model"
	"tobago-concierge-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	log.Println("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'arrival_method') THEN CREATE TYPE arrival_method AS ENUM ('plane', 'cruise', 'ferry'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'conversation_status') THEN CREATE TYPE conversation_status AS ENUM ('active', 'completed', 'abandoned'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'message_sender') THEN CREATE TYPE message_sender AS ENUM ('user', 'assistant'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'memory_type') THEN CREATE TYPE memory_type AS ENUM ('rating', 'preference', 'mention', 'complaint', 'recommendation'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'sentiment') THEN CREATE TYPE sentiment AS ENUM ('positive', 'negative', 'neutral', 'mixed'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'place_category') THEN CREATE TYPE place_category AS ENUM ('restaurant', 'beach', 'activity', 'transport', 'accommodation', 'general'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate for 8 Tables...")

	models := []interface{}{
		&model.Visitor{},
		&model.DeviceSignature{},
		&model.Conversation{},
		&model.Message{},
		&model.Memory{},
		&model.Rating{},
		&model.CachedAnswer{},
		&model.AnalyticsEvent{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Views & Functions
	log.Println("Step 3: Creating Views and Functions...")

	postMigrationSQL := []string{
		// View: place_rating_summary
		`CREATE OR REPLACE VIEW place_rating_summary AS
		 SELECT r.place_name, MIN(r.category) AS category, AVG(r.overall_rating) AS average_score, COUNT(*) AS rating_count
		 FROM ratings r
		 GROUP BY r.place_name
		 ORDER BY average_score DESC, rating_count DESC;`,

		// View: visitor_engagement
		`CREATE OR REPLACE VIEW visitor_engagement AS
		 SELECT v.id AS visitor_id, v.name, v.visit_count, v.last_seen_at,
		        COUNT(DISTINCT c.id) AS conversation_count,
		        COUNT(DISTINCT m.id) AS memory_count
		 FROM visitors v
		 LEFT JOIN conversations c ON c.visitor_id = v.id
		 LEFT JOIN memories m ON m.visitor_id = v.id
		 GROUP BY v.id, v.name, v.visit_count, v.last_seen_at;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("Success: Database migration completed successfully via GORM.")
}
