package models

import "time"

// ResourceType names the kind of content a marketplace resource holds.
type ResourceType string

const (
	ResourceAACBoard         ResourceType = "aac_board"
	ResourceVisualSchedule   ResourceType = "visual_schedule"
	ResourceMatchingActivity ResourceType = "matching_activity"
	ResourceSortingActivity  ResourceType = "sorting_activity"
	ResourceCustom           ResourceType = "custom"
)

// ValidResourceType reports whether s names a known resource type.
func ValidResourceType(s string) bool {
	switch ResourceType(s) {
	case ResourceAACBoard, ResourceVisualSchedule, ResourceMatchingActivity,
		ResourceSortingActivity, ResourceCustom:
		return true
	}
	return false
}

// ResourceCategory is a read-only seeded marketplace category.
type ResourceCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Resource is a shareable item in the marketplace. DownloadCount,
// RatingAverage and RatingCount are denormalized and maintained by the
// download and rating operations.
type Resource struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Type          ResourceType `json:"type"`
	CategoryID    string       `json:"category_id"`
	CreatorID     string       `json:"creator_id"`
	PriceCents    int          `json:"price_cents"`
	FileURL       string       `json:"file_url"`
	PreviewImage  string       `json:"preview_image,omitempty"`
	DownloadCount int          `json:"download_count"`
	RatingAverage float64      `json:"rating_average"`
	RatingCount   int          `json:"rating_count"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// IsFree reports whether the resource can be downloaded without a
// purchase.
func (r *Resource) IsFree() bool {
	return r.PriceCents == 0
}

// ResourceDownload records one download of a resource by a user.
type ResourceDownload struct {
	ID           string    `json:"id"`
	ResourceID   string    `json:"resource_id"`
	ProfileID    string    `json:"profile_id"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// ResourcePurchase records one purchase; at most one per user per
// resource.
type ResourcePurchase struct {
	ID          string    `json:"id"`
	ResourceID  string    `json:"resource_id"`
	ProfileID   string    `json:"profile_id"`
	PriceCents  int       `json:"price_cents"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// ResourceRating is a 1-5 star rating with an optional review. One per
// user per resource; re-rating replaces the previous row.
type ResourceRating struct {
	ID         string    `json:"id"`
	ResourceID string    `json:"resource_id"`
	ProfileID  string    `json:"profile_id"`
	Stars      int       `json:"stars"`
	Review     string    `json:"review,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
