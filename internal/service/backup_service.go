package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"chitraboard/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exported_at"`
	DatabaseType string             `json:"database_type"`
	Profiles     []ProfileBackup    `json:"profiles"`
	Links        []LinkBackup       `json:"links"`
	Activities   []ActivityBackup   `json:"activities"`
	Assignments  []AssignmentBackup `json:"assignments"`
	Responses    []ResponseBackup   `json:"responses"`
	Resources    []ResourceBackup   `json:"resources"`
}

// ProfileBackup represents a profile record for backup
type ProfileBackup struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LinkBackup represents a parent-child link for backup
type LinkBackup struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	ChildID   string    `json:"child_id"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityBackup represents an activity record for backup
type ActivityBackup struct {
	ID          string    `json:"id"`
	TherapistID string    `json:"therapist_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AssignmentBackup represents an assignment record for backup
type AssignmentBackup struct {
	ID          string     `json:"id"`
	ActivityID  string     `json:"activity_id"`
	ChildID     string     `json:"child_id"`
	TherapistID string     `json:"therapist_id"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ResponseBackup represents a completed activity response for backup
type ResponseBackup struct {
	ID               string    `json:"id"`
	AssignmentID     string    `json:"assignment_id"`
	ChildID          string    `json:"child_id"`
	ActivityID       string    `json:"activity_id"`
	Answers          string    `json:"answers"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	CompletedAt      time.Time `json:"completed_at"`
}

// ResourceBackup represents a marketplace resource for backup
type ResourceBackup struct {
	ID            string    `json:"id"`
	CreatorID     string    `json:"creator_id"`
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Type          string    `json:"type"`
	PriceCents    int       `json:"price_cents"`
	FileURL       string    `json:"file_url"`
	DownloadCount int       `json:"download_count"`
	RatingAverage float64   `json:"rating_average"`
	RatingCount   int       `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// GetDB returns the database connection for direct queries
func (s *BackupService) GetDB() *database.DB {
	return s.db
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportProfiles(backup); err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	if err := s.exportLinks(backup); err != nil {
		return fmt.Errorf("failed to export links: %w", err)
	}
	if err := s.exportActivities(backup); err != nil {
		return fmt.Errorf("failed to export activities: %w", err)
	}
	if err := s.exportAssignments(backup); err != nil {
		return fmt.Errorf("failed to export assignments: %w", err)
	}
	if err := s.exportResponses(backup); err != nil {
		return fmt.Errorf("failed to export responses: %w", err)
	}
	if err := s.exportResources(backup); err != nil {
		return fmt.Errorf("failed to export resources: %w", err)
	}

	log.Printf("Exported: %d profiles, %d links, %d activities, %d assignments, %d responses, %d resources",
		len(backup.Profiles), len(backup.Links), len(backup.Activities),
		len(backup.Assignments), len(backup.Responses), len(backup.Resources))

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importProfiles(backup.Profiles); err != nil {
		return fmt.Errorf("failed to import profiles: %w", err)
	}
	if err := s.importLinks(backup.Links); err != nil {
		return fmt.Errorf("failed to import links: %w", err)
	}
	if err := s.importActivities(backup.Activities); err != nil {
		return fmt.Errorf("failed to import activities: %w", err)
	}
	if err := s.importAssignments(backup.Assignments); err != nil {
		return fmt.Errorf("failed to import assignments: %w", err)
	}
	if err := s.importResponses(backup.Responses); err != nil {
		return fmt.Errorf("failed to import responses: %w", err)
	}
	if err := s.importResources(backup.Resources); err != nil {
		return fmt.Errorf("failed to import resources: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportProfiles(backup *BackupData) error {
	query := "SELECT id, username, email, full_name, role, password_hash, created_at, updated_at FROM profiles ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p ProfileBackup
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.FullName, &p.Role, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}
		backup.Profiles = append(backup.Profiles, p)
	}
	return rows.Err()
}

func (s *BackupService) exportLinks(backup *BackupData) error {
	query := "SELECT id, parent_id, child_id, created_by, created_at FROM parent_child_links ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l LinkBackup
		if err := rows.Scan(&l.ID, &l.ParentID, &l.ChildID, &l.CreatedBy, &l.CreatedAt); err != nil {
			return err
		}
		backup.Links = append(backup.Links, l)
	}
	return rows.Err()
}

func (s *BackupService) exportActivities(backup *BackupData) error {
	query := "SELECT id, therapist_id, name, type, content, created_at, updated_at FROM activities ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a ActivityBackup
		if err := rows.Scan(&a.ID, &a.TherapistID, &a.Name, &a.Type, &a.Content, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		backup.Activities = append(backup.Activities, a)
	}
	return rows.Err()
}

func (s *BackupService) exportAssignments(backup *BackupData) error {
	query := "SELECT id, activity_id, child_id, therapist_id, status, due_date, created_at, updated_at FROM assignments ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a AssignmentBackup
		var dueDate sql.NullTime
		if err := rows.Scan(&a.ID, &a.ActivityID, &a.ChildID, &a.TherapistID, &a.Status, &dueDate, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		if dueDate.Valid {
			a.DueDate = &dueDate.Time
		}
		backup.Assignments = append(backup.Assignments, a)
	}
	return rows.Err()
}

func (s *BackupService) exportResponses(backup *BackupData) error {
	query := "SELECT id, assignment_id, child_id, activity_id, answers, score, total_questions, time_spent_seconds, completed_at FROM activity_responses ORDER BY completed_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ResponseBackup
		if err := rows.Scan(&r.ID, &r.AssignmentID, &r.ChildID, &r.ActivityID, &r.Answers, &r.Score, &r.TotalQuestions, &r.TimeSpentSeconds, &r.CompletedAt); err != nil {
			return err
		}
		backup.Responses = append(backup.Responses, r)
	}
	return rows.Err()
}

func (s *BackupService) exportResources(backup *BackupData) error {
	query := "SELECT id, creator_id, category_id, title, description, type, price_cents, file_url, download_count, rating_average, rating_count, created_at, updated_at FROM resources ORDER BY created_at"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r ResourceBackup
		if err := rows.Scan(&r.ID, &r.CreatorID, &r.CategoryID, &r.Title, &r.Description, &r.Type, &r.PriceCents, &r.FileURL, &r.DownloadCount, &r.RatingAverage, &r.RatingCount, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return err
		}
		backup.Resources = append(backup.Resources, r)
	}
	return rows.Err()
}

func (s *BackupService) importProfiles(profiles []ProfileBackup) error {
	log.Printf("Importing %d profiles...", len(profiles))
	for _, p := range profiles {
		query := "INSERT INTO profiles (id, username, email, full_name, role, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, p.ID, p.Username, p.Email, p.FullName, p.Role, p.PasswordHash, p.CreatedAt, p.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import profile %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importLinks(links []LinkBackup) error {
	log.Printf("Importing %d links...", len(links))
	for _, l := range links {
		query := "INSERT INTO parent_child_links (id, parent_id, child_id, created_by, created_at) VALUES (?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, l.ID, l.ParentID, l.ChildID, l.CreatedBy, l.CreatedAt); err != nil {
			return fmt.Errorf("failed to import link %s: %w", l.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importActivities(activities []ActivityBackup) error {
	log.Printf("Importing %d activities...", len(activities))
	for _, a := range activities {
		query := "INSERT INTO activities (id, therapist_id, name, type, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, a.ID, a.TherapistID, a.Name, a.Type, a.Content, a.CreatedAt, a.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import activity %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importAssignments(assignments []AssignmentBackup) error {
	log.Printf("Importing %d assignments...", len(assignments))
	for _, a := range assignments {
		var dueDate interface{}
		if a.DueDate != nil {
			dueDate = *a.DueDate
		}
		query := "INSERT INTO assignments (id, activity_id, child_id, therapist_id, status, due_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, a.ID, a.ActivityID, a.ChildID, a.TherapistID, a.Status, dueDate, a.CreatedAt, a.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import assignment %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importResponses(responses []ResponseBackup) error {
	log.Printf("Importing %d responses...", len(responses))
	for _, r := range responses {
		query := "INSERT INTO activity_responses (id, assignment_id, child_id, activity_id, answers, score, total_questions, time_spent_seconds, completed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, r.ID, r.AssignmentID, r.ChildID, r.ActivityID, r.Answers, r.Score, r.TotalQuestions, r.TimeSpentSeconds, r.CompletedAt); err != nil {
			return fmt.Errorf("failed to import response %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importResources(resources []ResourceBackup) error {
	log.Printf("Importing %d resources...", len(resources))
	for _, r := range resources {
		query := "INSERT INTO resources (id, creator_id, category_id, title, description, type, price_cents, file_url, download_count, rating_average, rating_count, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
		if _, err := s.db.Exec(query, r.ID, r.CreatorID, r.CategoryID, r.Title, r.Description, r.Type, r.PriceCents, r.FileURL, r.DownloadCount, r.RatingAverage, r.RatingCount, r.CreatedAt, r.UpdatedAt); err != nil {
			return fmt.Errorf("failed to import resource %s: %w", r.ID, err)
		}
	}
	return nil
}
