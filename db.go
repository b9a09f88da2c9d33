package main

import (
	"log"
	"os"
	"strings"

	"github.com/franck-yvetot/expenses2/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	dsn := os.Getenv("DB_DSN")
	switch driver {
	case "", "postgres":
		if dsn == "" {
			log.Fatal("DB_DSN is not set. Provide a Postgres DSN in DB_DSN or set DB_DRIVER=sqlite.")
		}
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		if dsn == "" {
			dsn = "expenses.db"
		}
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		log.Fatalf("unsupported DB_DRIVER %q (want postgres or sqlite)", driver)
	}
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others.
		if err := db.AutoMigrate(&models.ExpenseReport{}); err != nil {
			log.Printf("migration warning (expense_reports): %v", err)
		}
		if err := db.AutoMigrate(&models.Expense{}); err != nil {
			log.Printf("migration warning (expenses): %v", err)
		}
		if err := db.AutoMigrate(&models.Attachment{}); err != nil {
			log.Printf("migration warning (attachments): %v", err)
		}
	}

	ensureUploadBase()
}

// ensureUploadBase creates the receipts directory under the upload base.
func ensureUploadBase() {
	dir := receiptsDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("failed to create upload dir %s: %v", dir, err)
	}
}

// uploadBaseDir returns the base directory for stored files (configurable via UPLOAD_BASE env)
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}

func receiptsDir() string {
	return uploadBaseDir() + "/receipts"
}
