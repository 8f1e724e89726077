package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
)

// seedCategories are the fixed marketplace categories. The count check
// makes re-running the seed safe.
var seedCategories = []struct {
	Slug string
	Name string
}{
	{"communication-boards", "Communication Boards"},
	{"visual-schedules", "Visual Schedules"},
	{"matching-activities", "Matching Activities"},
	{"sorting-activities", "Sorting Activities"},
	{"social-stories", "Social Stories"},
	{"sensory-activities", "Sensory Activities"},
	{"worksheets", "Worksheets"},
}

// SeedResourceCategories inserts the fixed marketplace categories if the
// table is empty.
func (db *DB) SeedResourceCategories() error {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM resource_categories").Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check resource categories count: %w", err)
	}

	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range seedCategories {
		_, err := tx.Exec(
			"INSERT INTO resource_categories (id, name, slug) VALUES (?, ?, ?)",
			uuid.NewString(), c.Name, c.Slug,
		)
		if err != nil {
			return fmt.Errorf("failed to insert category %s: %w", c.Slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category seed: %w", err)
	}

	log.Printf("Seeded %d resource categories", len(seedCategories))
	return nil
}
