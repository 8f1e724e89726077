package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"chitraboard/internal/database"
	"chitraboard/internal/models"

	"github.com/google/uuid"
)

// ActivityRepository handles activity database operations. Activity
// content is stored as a JSON document.
type ActivityRepository struct {
	db *database.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *database.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// CreateActivity inserts a new activity and returns it with its ID and
// timestamps set.
func (r *ActivityRepository) CreateActivity(therapistID, name string, activityType models.ActivityType, content models.MatchingContent) (*models.Activity, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal activity content: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO activities (id, name, type, therapist_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, name, activityType, therapistID, string(contentJSON), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return &models.Activity{
		ID:          id,
		TherapistID: therapistID,
		Name:        name,
		Type:        activityType,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func scanActivity(row interface{ Scan(...interface{}) error }) (*models.Activity, error) {
	a := &models.Activity{}
	var contentJSON string
	err := row.Scan(&a.ID, &a.Name, &a.Type, &a.TherapistID, &contentJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(contentJSON), &a.Content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal activity content: %w", err)
	}
	return a, nil
}

const activityColumns = "id, name, type, therapist_id, content, created_at, updated_at"

// GetActivityByID retrieves an activity by ID
func (r *ActivityRepository) GetActivityByID(id string) (*models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE id = ?"
	a, err := scanActivity(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return a, nil
}

// GetActivitiesByTherapist retrieves all activities authored by a
// therapist, newest first
func (r *ActivityRepository) GetActivitiesByTherapist(therapistID string) ([]models.Activity, error) {
	query := "SELECT " + activityColumns + " FROM activities WHERE therapist_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

// UpdateActivity replaces an activity's name and content
func (r *ActivityRepository) UpdateActivity(id, name string, content models.MatchingContent) error {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal activity content: %w", err)
	}

	query := `
		UPDATE activities
		SET name = ?, content = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err = r.db.Exec(query, name, string(contentJSON), id)
	if err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}
	return nil
}

// DeleteActivity deletes an activity; assignments and responses cascade
func (r *ActivityRepository) DeleteActivity(id string) error {
	_, err := r.db.Exec("DELETE FROM activities WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
