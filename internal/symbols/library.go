package symbols

import (
	"errors"
	"strings"

	"chitraboard/internal/models"
)

// ErrNotFound is returned by ByID for an unknown symbol id.
var ErrNotFound = errors.New("symbol not found")

// categoryOrder is the display order of category buckets in the picker.
var categoryOrder = []models.Category{
	models.CategoryFood,
	models.CategoryTransport,
	models.CategoryFestival,
	models.CategoryRoutine,
	models.CategoryEmotion,
	models.CategoryAction,
	models.CategoryObject,
	models.CategoryPlace,
	models.CategoryBody,
	models.CategoryFamily,
	models.CategoryAnimal,
	models.CategoryColor,
	models.CategoryNumber,
	models.CategoryWeather,
}

var byID map[string]models.Symbol

func init() {
	byID = make(map[string]models.Symbol, len(library))
	for _, s := range library {
		byID[s.ID] = s
	}
}

// All returns the full library in catalog order.
func All() []models.Symbol {
	out := make([]models.Symbol, len(library))
	copy(out, library)
	return out
}

// Categories returns the category display order.
func Categories() []models.Category {
	out := make([]models.Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Search returns symbols whose English label or any tag contains the
// query case-insensitively, or whose Hindi or regional label contains it
// as-is. An empty query returns the full library.
func Search(query string) []models.Symbol {
	if query == "" {
		return All()
	}

	lower := strings.ToLower(query)
	var matches []models.Symbol
	for _, s := range library {
		if symbolMatches(s, query, lower) {
			matches = append(matches, s)
		}
	}
	return matches
}

func symbolMatches(s models.Symbol, query, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(s.Labels.English), lowerQuery) {
		return true
	}
	// Hindi and regional scripts get a plain substring match; there is no
	// transliteration.
	if strings.Contains(s.Labels.Hindi, query) {
		return true
	}
	if strings.Contains(s.Labels.Regional, query) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), lowerQuery) {
			return true
		}
	}
	return false
}

// ByCategory returns symbols bucketed by category, each bucket in
// catalog order. Categories without symbols get an empty bucket.
func ByCategory() map[models.Category][]models.Symbol {
	buckets := make(map[models.Category][]models.Symbol, len(categoryOrder))
	for _, c := range categoryOrder {
		buckets[c] = []models.Symbol{}
	}
	for _, s := range library {
		buckets[s.Category] = append(buckets[s.Category], s)
	}
	return buckets
}

// ByID returns the symbol with the given id or ErrNotFound.
func ByID(id string) (models.Symbol, error) {
	s, ok := byID[id]
	if !ok {
		return models.Symbol{}, ErrNotFound
	}
	return s, nil
}
