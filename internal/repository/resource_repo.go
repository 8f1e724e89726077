package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"chitraboard/internal/database"
	"chitraboard/internal/models"

	"github.com/google/uuid"
)

// ResourceRepository handles marketplace database operations
type ResourceRepository struct {
	db *database.DB
}

// NewResourceRepository creates a new resource repository
func NewResourceRepository(db *database.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// ResourceFilter narrows and orders marketplace listings
type ResourceFilter struct {
	CategoryID string
	Type       models.ResourceType
	FreeOnly   bool
	Search     string
	Sort       string // "newest", "popular", "rating"; default newest
}

const resourceColumns = "id, title, description, type, category_id, creator_id, price_cents, file_url, preview_image, download_count, rating_average, rating_count, created_at, updated_at"

func scanResource(row interface{ Scan(...interface{}) error }) (*models.Resource, error) {
	res := &models.Resource{}
	err := row.Scan(
		&res.ID,
		&res.Title,
		&res.Description,
		&res.Type,
		&res.CategoryID,
		&res.CreatorID,
		&res.PriceCents,
		&res.FileURL,
		&res.PreviewImage,
		&res.DownloadCount,
		&res.RatingAverage,
		&res.RatingCount,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CreateResource publishes a new resource
func (r *ResourceRepository) CreateResource(res *models.Resource) (*models.Resource, error) {
	res.ID = uuid.NewString()
	now := time.Now()
	res.CreatedAt = now
	res.UpdatedAt = now

	query := `
		INSERT INTO resources (id, title, description, type, category_id, creator_id, price_cents, file_url, preview_image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		res.ID, res.Title, res.Description, res.Type, res.CategoryID,
		res.CreatorID, res.PriceCents, res.FileURL, res.PreviewImage, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// GetResourceByID retrieves a resource by ID
func (r *ResourceRepository) GetResourceByID(id string) (*models.Resource, error) {
	query := "SELECT " + resourceColumns + " FROM resources WHERE id = ?"
	res, err := scanResource(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	return res, nil
}

// ListResources returns resources matching the filter
func (r *ResourceRepository) ListResources(filter ResourceFilter) ([]models.Resource, error) {
	var conditions []string
	var args []interface{}

	if filter.CategoryID != "" {
		conditions = append(conditions, "category_id = ?")
		args = append(args, filter.CategoryID)
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.FreeOnly {
		conditions = append(conditions, "price_cents = 0")
	}
	if filter.Search != "" {
		conditions = append(conditions, "(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)")
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	query := "SELECT " + resourceColumns + " FROM resources"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch filter.Sort {
	case "popular":
		query += " ORDER BY download_count DESC, created_at DESC"
	case "rating":
		query += " ORDER BY rating_average DESC, rating_count DESC"
	default:
		query += " ORDER BY created_at DESC"
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer rows.Close()

	var resources []models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

// UpdateResource updates a resource's listing fields
func (r *ResourceRepository) UpdateResource(id, title, description, categoryID string, priceCents int) error {
	query := `
		UPDATE resources
		SET title = ?, description = ?, category_id = ?, price_cents = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := r.db.Exec(query, title, description, categoryID, priceCents, id)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}
	return nil
}

// DeleteResource removes a resource and its downloads, purchases and
// ratings
func (r *ResourceRepository) DeleteResource(id string) error {
	_, err := r.db.Exec("DELETE FROM resources WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

// RecordDownload inserts a download row and bumps the denormalized
// counter in one transaction. The counter update is a relative UPDATE
// so concurrent downloads never lose increments.
func (r *ResourceRepository) RecordDownload(resourceID, profileID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO resource_downloads (id, resource_id, profile_id) VALUES (?, ?, ?)",
		uuid.NewString(), resourceID, profileID)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}

	_, err = tx.Exec(
		"UPDATE resources SET download_count = download_count + 1 WHERE id = ?",
		resourceID)
	if err != nil {
		return fmt.Errorf("failed to bump download count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit download: %w", err)
	}
	return nil
}

// HasPurchase reports whether a user has purchased a resource
func (r *ResourceRepository) HasPurchase(resourceID, profileID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM resource_purchases WHERE resource_id = ? AND profile_id = ?"
	if err := r.db.QueryRow(query, resourceID, profileID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check purchase: %w", err)
	}
	return count > 0, nil
}

// CreatePurchase records a purchase. The unique constraint rejects
// buying the same resource twice.
func (r *ResourceRepository) CreatePurchase(resourceID, profileID string, priceCents int) (*models.ResourcePurchase, error) {
	id := uuid.NewString()
	query := `
		INSERT INTO resource_purchases (id, resource_id, profile_id, price_cents)
		VALUES (?, ?, ?, ?)
	`
	_, err := r.db.Exec(query, id, resourceID, profileID, priceCents)
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}
	return &models.ResourcePurchase{
		ID:          id,
		ResourceID:  resourceID,
		ProfileID:   profileID,
		PriceCents:  priceCents,
		PurchasedAt: time.Now(),
	}, nil
}

// UpsertRating replaces a user's rating of a resource and recomputes
// the denormalized average and count, all in one transaction.
func (r *ResourceRepository) UpsertRating(resourceID, profileID string, stars int, review string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"DELETE FROM resource_ratings WHERE resource_id = ? AND profile_id = ?",
		resourceID, profileID)
	if err != nil {
		return fmt.Errorf("failed to clear previous rating: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO resource_ratings (id, resource_id, profile_id, stars, review) VALUES (?, ?, ?, ?, ?)",
		uuid.NewString(), resourceID, profileID, stars, review)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE resources
		SET rating_average = (SELECT AVG(stars) FROM resource_ratings WHERE resource_id = ?),
		    rating_count = (SELECT COUNT(*) FROM resource_ratings WHERE resource_id = ?)
		WHERE id = ?
	`, resourceID, resourceID, resourceID)
	if err != nil {
		return fmt.Errorf("failed to recompute rating summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rating: %w", err)
	}
	return nil
}

// GetRatings returns a resource's ratings, newest first
func (r *ResourceRepository) GetRatings(resourceID string) ([]models.ResourceRating, error) {
	query := `
		SELECT id, resource_id, profile_id, stars, review, created_at
		FROM resource_ratings
		WHERE resource_id = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []models.ResourceRating
	for rows.Next() {
		var rating models.ResourceRating
		err := rows.Scan(&rating.ID, &rating.ResourceID, &rating.ProfileID, &rating.Stars, &rating.Review, &rating.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// ListCategories returns all seeded marketplace categories
func (r *ResourceRepository) ListCategories() ([]models.ResourceCategory, error) {
	rows, err := r.db.Query("SELECT id, name, slug FROM resource_categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.ResourceCategory
	for rows.Next() {
		var c models.ResourceCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
