package database

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Tables created by migrations
	tables := []string{
		"profiles", "sessions", "password_reset_tokens", "parent_child_links",
		"activities", "assignments", "activity_responses",
		"resource_categories", "resources", "resource_downloads",
		"resource_purchases", "resource_ratings",
	}
	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}

	if err := db.SeedResourceCategories(); err != nil {
		t.Fatalf("Failed to seed resource categories: %v", err)
	}
	// Seeding again must be a no-op
	if err := db.SeedResourceCategories(); err != nil {
		t.Fatalf("Re-running category seed failed: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM resource_categories").Scan(&count); err != nil {
		t.Fatalf("Failed to count categories: %v", err)
	}
	if count != len(seedCategories) {
		t.Errorf("Expected %d categories, got %d", len(seedCategories), count)
	}
}

// TestDatabaseTransactions tests commit and rollback through the dialect-aware Tx
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	insert := "INSERT INTO profiles (id, username, email, full_name, role, password_hash) VALUES (?, ?, ?, ?, ?, ?)"

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	_, err = tx.Exec(insert, "prof-1", "asha.t", "asha@example.com", "Asha", "therapist", "hash")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", "prof-1").Scan(&count); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 profile after commit, got %d", count)
	}

	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}
	_, err = tx2.Exec(insert, "prof-2", "ravi.p", "ravi@example.com", "Ravi", "parent", "hash")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}
	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM profiles WHERE id = ?", "prof-2").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 profiles after rollback, got %d", count)
	}
}

// TestConcurrentAccess tests concurrent reads against a WAL-mode database
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	_, err := db.Exec(
		"INSERT INTO profiles (id, username, email, full_name, role, password_hash) VALUES (?, ?, ?, ?, ?, ?)",
		"prof-c", "meena.t", "meena@example.com", "Meena", "therapist", "hash")
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			var username string
			err := db.QueryRow("SELECT username FROM profiles WHERE email = ?", "meena@example.com").Scan(&username)
			if err != nil {
				t.Errorf("Concurrent read failed: %v", err)
			} else if username != "meena.t" {
				t.Errorf("Expected username 'meena.t', got '%s'", username)
			}
			done <- true
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
}
