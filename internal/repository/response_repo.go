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

// ResponseRepository handles activity response database operations.
// Responses are append-only; replays create new rows.
type ResponseRepository struct {
	db *database.DB
}

// NewResponseRepository creates a new response repository
func NewResponseRepository(db *database.DB) *ResponseRepository {
	return &ResponseRepository{db: db}
}

// CreateResponse records a completed play-through
func (r *ResponseRepository) CreateResponse(assignmentID, childID, activityID string, answers map[string]string, score, totalQuestions, timeSpentSeconds int) (*models.ActivityResponse, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal answers: %w", err)
	}

	id := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO activity_responses (id, assignment_id, child_id, activity_id, answers, score, total_questions, time_spent_seconds, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, id, assignmentID, childID, activityID, string(answersJSON), score, totalQuestions, timeSpentSeconds, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create response: %w", err)
	}

	return &models.ActivityResponse{
		ID:               id,
		AssignmentID:     assignmentID,
		ChildID:          childID,
		ActivityID:       activityID,
		Answers:          answers,
		Score:            score,
		TotalQuestions:   totalQuestions,
		TimeSpentSeconds: timeSpentSeconds,
		CompletedAt:      now,
	}, nil
}

const responseColumns = "id, assignment_id, child_id, activity_id, answers, score, total_questions, time_spent_seconds, completed_at"

func scanResponse(row interface{ Scan(...interface{}) error }) (*models.ActivityResponse, error) {
	resp := &models.ActivityResponse{}
	var answersJSON string
	err := row.Scan(
		&resp.ID,
		&resp.AssignmentID,
		&resp.ChildID,
		&resp.ActivityID,
		&answersJSON,
		&resp.Score,
		&resp.TotalQuestions,
		&resp.TimeSpentSeconds,
		&resp.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(answersJSON), &resp.Answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal answers: %w", err)
	}
	return resp, nil
}

// GetResponseByID retrieves a response by ID
func (r *ResponseRepository) GetResponseByID(id string) (*models.ActivityResponse, error) {
	query := "SELECT " + responseColumns + " FROM activity_responses WHERE id = ?"
	resp, err := scanResponse(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return resp, nil
}

// GetResponsesForChild returns all of a child's responses, newest first
func (r *ResponseRepository) GetResponsesForChild(childID string) ([]models.ActivityResponse, error) {
	query := "SELECT " + responseColumns + " FROM activity_responses WHERE child_id = ? ORDER BY completed_at DESC"
	return r.queryResponses(query, childID)
}

// GetResponsesForAssignment returns all responses for one assignment,
// newest first
func (r *ResponseRepository) GetResponsesForAssignment(assignmentID string) ([]models.ActivityResponse, error) {
	query := "SELECT " + responseColumns + " FROM activity_responses WHERE assignment_id = ? ORDER BY completed_at DESC"
	return r.queryResponses(query, assignmentID)
}

func (r *ResponseRepository) queryResponses(query string, args ...interface{}) ([]models.ActivityResponse, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	var responses []models.ActivityResponse
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, *resp)
	}
	return responses, rows.Err()
}
