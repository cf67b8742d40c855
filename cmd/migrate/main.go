package main

import (
	"dhanrekha/internal/config" // Custom import path (Config)
	"dhanrekha/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration
}
