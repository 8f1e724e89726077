package handlers

import (
	"net/http"

	"chitraboard/internal/models"
	"chitraboard/internal/repository"
	"chitraboard/internal/service"
)

// MarketplaceHandler serves the resource marketplace
type MarketplaceHandler struct {
	marketplaceService *service.MarketplaceService
}

// NewMarketplaceHandler creates a new marketplace handler
func NewMarketplaceHandler(marketplaceService *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceService: marketplaceService}
}

// Categories lists the fixed marketplace categories
func (h *MarketplaceHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.marketplaceService.Categories()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

// Browse lists resources with optional filters:
// ?category=<id>&type=<type>&free=1&q=<search>&sort=popular|rating|newest
func (h *MarketplaceHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.ResourceFilter{
		CategoryID: q.Get("category"),
		Type:       models.ResourceType(q.Get("type")),
		Search:     q.Get("q"),
		Sort:       q.Get("sort"),
	}
	if q.Get("free") == "1" || q.Get("free") == "true" {
		filter.FreeOnly = true
	}

	resources, err := h.marketplaceService.Browse(filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resources)
}

type resourceDetail struct {
	Resource *models.Resource        `json:"resource"`
	Ratings  []models.ResourceRating `json:"ratings"`
}

// GetResource returns one resource with its ratings
func (h *MarketplaceHandler) GetResource(w http.ResponseWriter, r *http.Request) {
	resource, ratings, err := h.marketplaceService.GetResource(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resourceDetail{Resource: resource, Ratings: ratings})
}

type publishRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	CategoryID  string `json:"category_id"`
	PriceCents  int    `json:"price_cents"`
	FileURL     string `json:"file_url"`
	PreviewImg  string `json:"preview_image"`
}

// Publish lists a new resource
func (h *MarketplaceHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resource, err := h.marketplaceService.Publish(GetProfileFromContext(r.Context()), &models.Resource{
		Title:        req.Title,
		Description:  req.Description,
		Type:         models.ResourceType(req.Type),
		CategoryID:   req.CategoryID,
		PriceCents:   req.PriceCents,
		FileURL:      req.FileURL,
		PreviewImage: req.PreviewImg,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, resource)
}

type updateResourceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	PriceCents  int    `json:"price_cents"`
}

// Update edits a resource listing
func (h *MarketplaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateResourceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resource, err := h.marketplaceService.Update(GetProfileFromContext(r.Context()), r.PathValue("id"), req.Title, req.Description, req.CategoryID, req.PriceCents)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resource)
}

// Delete removes a resource listing
func (h *MarketplaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.marketplaceService.Delete(GetProfileFromContext(r.Context()), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Purchase buys a priced resource
func (h *MarketplaceHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.marketplaceService.Purchase(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, purchase)
}

// Download records a download and returns the file URL
func (h *MarketplaceHandler) Download(w http.ResponseWriter, r *http.Request) {
	fileURL, err := h.marketplaceService.Download(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"file_url": fileURL})
}

type rateRequest struct {
	Stars  int    `json:"stars"`
	Review string `json:"review"`
}

// Rate stores a star rating with an optional review
func (h *MarketplaceHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.marketplaceService.Rate(GetProfileFromContext(r.Context()), r.PathValue("id"), req.Stars, req.Review); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "rated"})
}
