// Package db opens the draft database and applies GORM migrations.
package db

import (
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/garage-estimates/internal/models"
)

// Connect opens the database selected by the DSN and migrates the schema.
// A postgres DSN (postgres:// URL or key=value form) gets a short retry
// loop so the server can come up before the database does; sqlite opens
// immediately.
func Connect(dsn string) (*gorm.DB, error) {
	var conn *gorm.DB
	var err error

	if isPostgresDSN(dsn) {
		for i := 0; i < 5; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			log.Printf("database connect attempt %d/5 failed, retrying...", i+1)
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// Migrate applies the schema migrations.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(&models.DraftRecord{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
