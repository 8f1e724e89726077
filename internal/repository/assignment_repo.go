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

// AssignmentRepository handles assignment database operations
type AssignmentRepository struct {
	db *database.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *database.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// CreateAssignment assigns an activity to a child. The unique
// constraint rejects assigning the same activity to a child twice.
func (r *AssignmentRepository) CreateAssignment(activityID, childID, therapistID string, dueDate *time.Time) (*models.Assignment, error) {
	id := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO assignments (id, activity_id, child_id, therapist_id, status, due_date, assigned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, id, activityID, childID, therapistID, models.StatusAssigned, dueDate, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	return &models.Assignment{
		ID:          id,
		ActivityID:  activityID,
		ChildID:     childID,
		TherapistID: therapistID,
		Status:      models.StatusAssigned,
		DueDate:     dueDate,
		AssignedAt:  now,
	}, nil
}

func scanAssignment(row interface{ Scan(...interface{}) error }) (*models.Assignment, error) {
	a := &models.Assignment{}
	var dueDate sql.NullTime
	err := row.Scan(&a.ID, &a.ActivityID, &a.ChildID, &a.TherapistID, &a.Status, &dueDate, &a.AssignedAt)
	if err != nil {
		return nil, err
	}
	if dueDate.Valid {
		a.DueDate = &dueDate.Time
	}
	return a, nil
}

const assignmentColumns = "id, activity_id, child_id, therapist_id, status, due_date, assigned_at"

// GetAssignmentByID retrieves an assignment by ID
func (r *AssignmentRepository) GetAssignmentByID(id string) (*models.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE id = ?"
	a, err := scanAssignment(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return a, nil
}

// AssignmentExists reports whether an activity is already assigned to a
// child
func (r *AssignmentRepository) AssignmentExists(activityID, childID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM assignments WHERE activity_id = ? AND child_id = ?"
	if err := r.db.QueryRow(query, activityID, childID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check assignment: %w", err)
	}
	return count > 0, nil
}

// GetAssignmentsForChild returns a child's assignments with their
// activities, newest first
func (r *AssignmentRepository) GetAssignmentsForChild(childID string) ([]models.AssignmentWithActivity, error) {
	query := `
		SELECT a.id, a.activity_id, a.child_id, a.therapist_id, a.status, a.due_date, a.assigned_at,
		       act.id, act.name, act.type, act.therapist_id, act.content, act.created_at, act.updated_at
		FROM assignments a
		JOIN activities act ON act.id = a.activity_id
		WHERE a.child_id = ?
		ORDER BY a.assigned_at DESC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var result []models.AssignmentWithActivity
	for rows.Next() {
		var item models.AssignmentWithActivity
		var dueDate sql.NullTime
		var contentJSON string
		err := rows.Scan(
			&item.Assignment.ID,
			&item.Assignment.ActivityID,
			&item.Assignment.ChildID,
			&item.Assignment.TherapistID,
			&item.Assignment.Status,
			&dueDate,
			&item.Assignment.AssignedAt,
			&item.Activity.ID,
			&item.Activity.Name,
			&item.Activity.Type,
			&item.Activity.TherapistID,
			&contentJSON,
			&item.Activity.CreatedAt,
			&item.Activity.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if dueDate.Valid {
			item.Assignment.DueDate = &dueDate.Time
		}
		if err := json.Unmarshal([]byte(contentJSON), &item.Activity.Content); err != nil {
			return nil, fmt.Errorf("failed to unmarshal activity content: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

// GetAssignmentsByTherapist returns all assignments created by a
// therapist
func (r *AssignmentRepository) GetAssignmentsByTherapist(therapistID string) ([]models.Assignment, error) {
	query := "SELECT " + assignmentColumns + " FROM assignments WHERE therapist_id = ? ORDER BY assigned_at DESC"
	rows, err := r.db.Query(query, therapistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

// GetAssignmentsForChildren returns assignments for a set of children,
// used for progress aggregation. The list is fetched child by child to
// keep the query portable.
func (r *AssignmentRepository) GetAssignmentsForChildren(childIDs []string) ([]models.Assignment, error) {
	var all []models.Assignment
	for _, childID := range childIDs {
		query := "SELECT " + assignmentColumns + " FROM assignments WHERE child_id = ?"
		rows, err := r.db.Query(query, childID)
		if err != nil {
			return nil, fmt.Errorf("failed to query assignments: %w", err)
		}
		for rows.Next() {
			a, err := scanAssignment(rows)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan assignment: %w", err)
			}
			all = append(all, *a)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}
	return all, nil
}

// UpdateStatus sets an assignment's status
func (r *AssignmentRepository) UpdateStatus(id string, status models.AssignmentStatus) error {
	query := "UPDATE assignments SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}
	return nil
}

// DeleteAssignment removes an assignment and its responses
func (r *AssignmentRepository) DeleteAssignment(id string) error {
	_, err := r.db.Exec("DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}
