package repository

import (
	"fmt"
	"time"

	"chitraboard/internal/database"
	"chitraboard/internal/models"

	"github.com/google/uuid"
)

// LinkRepository handles parent-child link database operations
type LinkRepository struct {
	db *database.DB
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(db *database.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// CreateLink links a parent to a child. The unique constraint rejects
// duplicate links.
func (r *LinkRepository) CreateLink(parentID, childID, createdBy string) (*models.ParentChildLink, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO parent_child_links (id, parent_id, child_id, created_by)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, id, parentID, childID, createdBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return &models.ParentChildLink{
		ID:        id,
		ParentID:  parentID,
		ChildID:   childID,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}, nil
}

// LinkExists reports whether a parent-child link already exists
func (r *LinkRepository) LinkExists(parentID, childID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM parent_child_links WHERE parent_id = ? AND child_id = ?"
	if err := r.db.QueryRow(query, parentID, childID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check link: %w", err)
	}
	return count > 0, nil
}

// GetChildrenForParent returns the child profiles linked to a parent
func (r *LinkRepository) GetChildrenForParent(parentID string) ([]models.Profile, error) {
	query := `
		SELECT p.id, p.username, p.email, p.full_name, p.role, p.password_hash, p.created_at, p.updated_at
		FROM profiles p
		JOIN parent_child_links l ON l.child_id = p.id
		WHERE l.parent_id = ?
		ORDER BY p.full_name
	`
	rows, err := r.db.Query(query, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query linked children: %w", err)
	}
	defer rows.Close()

	var children []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan linked child: %w", err)
		}
		children = append(children, *p)
	}
	return children, rows.Err()
}

// GetLinksForChild returns all links pointing at a child
func (r *LinkRepository) GetLinksForChild(childID string) ([]models.ParentChildLink, error) {
	query := `
		SELECT id, parent_id, child_id, created_by, created_at
		FROM parent_child_links
		WHERE child_id = ?
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()

	var links []models.ParentChildLink
	for rows.Next() {
		var l models.ParentChildLink
		if err := rows.Scan(&l.ID, &l.ParentID, &l.ChildID, &l.CreatedBy, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// DeleteLink removes a parent-child link
func (r *LinkRepository) DeleteLink(id string) error {
	_, err := r.db.Exec("DELETE FROM parent_child_links WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}
