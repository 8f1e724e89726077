package repository

import (
	"database/sql"
	"fmt"
	"time"

	"chitraboard/internal/database"
	"chitraboard/internal/models"

	"github.com/google/uuid"
)

// ProfileRepository handles database operations for profiles, sessions
// and password reset tokens
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = "id, username, email, full_name, role, password_hash, created_at, updated_at"

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.FullName,
		&p.Role,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CreateProfile inserts a new profile. The caller sets everything except
// the ID and timestamps.
func (r *ProfileRepository) CreateProfile(username, email, fullName string, role models.Role, passwordHash string) (*models.Profile, error) {
	// First account becomes admin
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	id := uuid.NewString()
	now := time.Now()
	query := `
		INSERT INTO profiles (id, username, email, full_name, role, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, id, username, email, fullName, role, passwordHash, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &models.Profile{
		ID:           id,
		Username:     username,
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetProfileByID retrieves a profile by ID
func (r *ProfileRepository) GetProfileByID(id string) (*models.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE id = ?"
	p, err := scanProfile(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByUsername retrieves a profile by username
func (r *ProfileRepository) GetProfileByUsername(username string) (*models.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE username = ?"
	p, err := scanProfile(r.db.QueryRow(query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetProfileByEmail retrieves a profile by email address
func (r *ProfileRepository) GetProfileByEmail(email string) (*models.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE email = ?"
	p, err := scanProfile(r.db.QueryRow(query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// GetAllProfiles retrieves all profiles, newest first
func (r *ProfileRepository) GetAllProfiles() ([]models.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles ORDER BY created_at DESC"
	return r.queryProfiles(query)
}

// GetProfilesByRole retrieves all profiles with the given role
func (r *ProfileRepository) GetProfilesByRole(role models.Role) ([]models.Profile, error) {
	query := "SELECT " + profileColumns + " FROM profiles WHERE role = ? ORDER BY full_name"
	return r.queryProfiles(query, role)
}

func (r *ProfileRepository) queryProfiles(query string, args ...interface{}) ([]models.Profile, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

// UpdateProfile updates a profile's editable fields
func (r *ProfileRepository) UpdateProfile(id, email, fullName string) error {
	query := `
		UPDATE profiles
		SET email = ?, full_name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, email, fullName, id)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateRole changes a profile's role
func (r *ProfileRepository) UpdateRole(id string, role models.Role) error {
	query := "UPDATE profiles SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	return nil
}

// UpdatePassword replaces a profile's password hash
func (r *ProfileRepository) UpdatePassword(id, passwordHash string) error {
	query := "UPDATE profiles SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	_, err := r.db.Exec(query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// DeleteProfile deletes a profile and all associated data
func (r *ProfileRepository) DeleteProfile(id string) error {
	_, err := r.db.Exec("DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// CreateSession creates a new session for a profile
func (r *ProfileRepository) CreateSession(sessionID, profileID string, expiresAt time.Time) (*models.Session, error) {
	query := "INSERT INTO sessions (id, profile_id, expires_at) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, sessionID, profileID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &models.Session{
		ID:        sessionID,
		ProfileID: profileID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// GetSession retrieves a session by ID
func (r *ProfileRepository) GetSession(sessionID string) (*models.Session, error) {
	query := "SELECT id, profile_id, expires_at, created_at FROM sessions WHERE id = ?"
	session := &models.Session{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.ProfileID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// DeleteSession removes a session
func (r *ProfileRepository) DeleteSession(sessionID string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired sessions
func (r *ProfileRepository) DeleteExpiredSessions() error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}

// CreateResetToken stores a password reset token
func (r *ProfileRepository) CreateResetToken(token, profileID string, expiresAt time.Time) error {
	query := "INSERT INTO password_reset_tokens (token, profile_id, expires_at) VALUES (?, ?, ?)"
	_, err := r.db.Exec(query, token, profileID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetResetToken retrieves a password reset token
func (r *ProfileRepository) GetResetToken(token string) (*models.PasswordResetToken, error) {
	query := "SELECT token, profile_id, expires_at, created_at, used FROM password_reset_tokens WHERE token = ?"
	t := &models.PasswordResetToken{}
	err := r.db.QueryRow(query, token).Scan(
		&t.Token,
		&t.ProfileID,
		&t.ExpiresAt,
		&t.CreatedAt,
		&t.Used,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return t, nil
}

// MarkResetTokenUsed marks a reset token as consumed
func (r *ProfileRepository) MarkResetTokenUsed(token string) error {
	query := "UPDATE password_reset_tokens SET used = " + r.db.Dialect.BoolValue(true) + " WHERE token = ?"
	_, err := r.db.Exec(query, token)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	return nil
}
