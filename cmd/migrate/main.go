package main

import (
	"amine_web/internal/config" // Custom import path (Config)
	"amine_web/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())      // Run schema migration
}
