package service

import (
	"errors"
	"fmt"

	"chitraboard/internal/authz"
	"chitraboard/internal/models"
	"chitraboard/internal/repository"
	"chitraboard/internal/validation"
)

var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrPurchaseRequired = errors.New("purchase required before download")
	ErrAlreadyPurchased = errors.New("resource already purchased")
)

// MarketplaceService handles the shared resource marketplace
type MarketplaceService struct {
	resourceRepo *repository.ResourceRepository
}

// NewMarketplaceService creates a new marketplace service
func NewMarketplaceService(resourceRepo *repository.ResourceRepository) *MarketplaceService {
	return &MarketplaceService{resourceRepo: resourceRepo}
}

// Categories returns the seeded marketplace categories
func (s *MarketplaceService) Categories() ([]models.ResourceCategory, error) {
	return s.resourceRepo.ListCategories()
}

// Browse lists resources matching the filter. Browsing needs no
// marketplace capability; publishing and buying do.
func (s *MarketplaceService) Browse(filter repository.ResourceFilter) ([]models.Resource, error) {
	resources, err := s.resourceRepo.ListResources(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to browse resources: %w", err)
	}
	return resources, nil
}

// GetResource returns one resource with its ratings
func (s *MarketplaceService) GetResource(id string) (*models.Resource, []models.ResourceRating, error) {
	resource, err := s.resourceRepo.GetResourceByID(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, nil, ErrResourceNotFound
	}
	ratings, err := s.resourceRepo.GetRatings(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get ratings: %w", err)
	}
	return resource, ratings, nil
}

// Publish creates a new marketplace resource owned by the actor
func (s *MarketplaceService) Publish(actor *models.Profile, res *models.Resource) (*models.Resource, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionUseMarketplace) {
		return nil, ErrForbidden
	}
	if err := validation.ValidateDocumentName(res.Title); err != nil {
		return nil, validation.Error{Field: "title", Message: "title is required"}
	}
	if !models.ValidResourceType(string(res.Type)) {
		return nil, validation.Error{Field: "type", Message: "unknown resource type"}
	}
	if res.PriceCents < 0 {
		return nil, validation.Error{Field: "price_cents", Message: "price cannot be negative"}
	}

	res.CreatorID = actor.ID
	created, err := s.resourceRepo.CreateResource(res)
	if err != nil {
		return nil, fmt.Errorf("failed to publish resource: %w", err)
	}
	return created, nil
}

// Update edits a resource's listing. Creator only (admins included).
func (s *MarketplaceService) Update(actor *models.Profile, id, title, description, categoryID string, priceCents int) (*models.Resource, error) {
	resource, err := s.requireOwned(actor, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDocumentName(title); err != nil {
		return nil, validation.Error{Field: "title", Message: "title is required"}
	}
	if priceCents < 0 {
		return nil, validation.Error{Field: "price_cents", Message: "price cannot be negative"}
	}

	if err := s.resourceRepo.UpdateResource(resource.ID, title, description, categoryID, priceCents); err != nil {
		return nil, fmt.Errorf("failed to update resource: %w", err)
	}
	updated, err := s.resourceRepo.GetResourceByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload resource: %w", err)
	}
	return updated, nil
}

// Delete removes a resource. Creator only (admins included).
func (s *MarketplaceService) Delete(actor *models.Profile, id string) error {
	resource, err := s.requireOwned(actor, id)
	if err != nil {
		return err
	}
	if err := s.resourceRepo.DeleteResource(resource.ID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}
	return nil
}

func (s *MarketplaceService) requireOwned(actor *models.Profile, id string) (*models.Resource, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionUseMarketplace) {
		return nil, ErrForbidden
	}
	resource, err := s.resourceRepo.GetResourceByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	if resource.CreatorID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, ErrNotYours
	}
	return resource, nil
}

// Purchase buys a priced resource. Free resources need no purchase,
// and buying twice is rejected.
func (s *MarketplaceService) Purchase(actor *models.Profile, resourceID string) (*models.ResourcePurchase, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionUseMarketplace) {
		return nil, ErrForbidden
	}

	resource, err := s.resourceRepo.GetResourceByID(resourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return nil, ErrResourceNotFound
	}
	if resource.IsFree() {
		return nil, validation.Error{Field: "resource_id", Message: "resource is free"}
	}

	has, err := s.resourceRepo.HasPurchase(resourceID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check purchase: %w", err)
	}
	if has {
		return nil, ErrAlreadyPurchased
	}

	purchase, err := s.resourceRepo.CreatePurchase(resourceID, actor.ID, resource.PriceCents)
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	return purchase, nil
}

// Download records a download and returns the file URL. Priced
// resources require a prior purchase unless the actor created them.
func (s *MarketplaceService) Download(actor *models.Profile, resourceID string) (string, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionUseMarketplace) {
		return "", ErrForbidden
	}

	resource, err := s.resourceRepo.GetResourceByID(resourceID)
	if err != nil {
		return "", fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return "", ErrResourceNotFound
	}

	if !resource.IsFree() && resource.CreatorID != actor.ID {
		has, err := s.resourceRepo.HasPurchase(resourceID, actor.ID)
		if err != nil {
			return "", fmt.Errorf("failed to check purchase: %w", err)
		}
		if !has {
			return "", ErrPurchaseRequired
		}
	}

	if err := s.resourceRepo.RecordDownload(resourceID, actor.ID); err != nil {
		return "", fmt.Errorf("failed to record download: %w", err)
	}
	return resource.FileURL, nil
}

// Rate stores a 1-5 star rating with an optional review. Re-rating
// replaces the previous rating.
func (s *MarketplaceService) Rate(actor *models.Profile, resourceID string, stars int, review string) error {
	if actor == nil || !authz.Can(actor.Role, authz.ActionUseMarketplace) {
		return ErrForbidden
	}
	if err := validation.ValidateStars(stars); err != nil {
		return err
	}

	resource, err := s.resourceRepo.GetResourceByID(resourceID)
	if err != nil {
		return fmt.Errorf("failed to get resource: %w", err)
	}
	if resource == nil {
		return ErrResourceNotFound
	}

	if err := s.resourceRepo.UpsertRating(resourceID, actor.ID, stars, review); err != nil {
		return fmt.Errorf("failed to store rating: %w", err)
	}
	return nil
}
