package db

import (
	"amine_web/internal/domain" // Domain models

	"github.com/sirupsen/logrus" // Structured logging

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to the database
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Interaction{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// Reset drops every table and recreates the schema from scratch.
// All data is lost; callers must confirm before invoking this.
func Reset(dsn string) {
	db, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	// Drop in child-first order so foreign keys never block the drop
	err = db.Migrator().DropTable(&domain.Interaction{}, &domain.Post{}, &domain.User{})
	if err != nil {
		logrus.Fatalf("drop tables failed: %v", err)
	}
	logrus.Info("All tables dropped.")
	// Recreate the schema
	err = db.AutoMigrate(&domain.User{}, &domain.Post{}, &domain.Interaction{})
	if err != nil {
		logrus.Fatalf("recreate tables failed: %v", err)
	}
	logrus.Info("Database reset completed.")
}
