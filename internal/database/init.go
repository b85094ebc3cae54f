package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/config"
)

// RequiredTables must exist before the server accepts traffic
var RequiredTables = []string{"benchmarks", "participants", "summaries"}

// Initialize creates a database connection pool and verifies the schema is in place
func Initialize(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	missing, err := MissingTables(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if len(missing) > 0 {
		db.Close()
		return nil, fmt.Errorf("database schema incomplete, missing tables: %s (apply migrations/001_initial.sql)", strings.Join(missing, ", "))
	}

	log.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.Name,
	}).Info("Database connection established")

	return db, nil
}

// MissingTables reports which of RequiredTables are not visible on the search path
func MissingTables(ctx context.Context, db *DB) ([]string, error) {
	var missing []string
	for _, table := range RequiredTables {
		var exists bool
		if err := db.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}
	return missing, nil
}
