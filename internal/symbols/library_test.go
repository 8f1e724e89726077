package symbols

import (
	"testing"

	"chitraboard/internal/models"
)

func TestSearch(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantID    string
		wantEmpty bool
	}{
		{name: "english label match", query: "roti", wantID: "food-roti"},
		{name: "mixed case", query: "RoTi", wantID: "food-roti"},
		{name: "tag match", query: "breakfast", wantID: "food-dosa"},
		{name: "hindi label match", query: "रोटी", wantID: "food-roti"},
		{name: "regional label match", query: "தோசை", wantID: "food-dosa"},
		{name: "no match", query: "xyz123", wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query)
			if tt.wantEmpty {
				if len(got) != 0 {
					t.Errorf("Search(%q) returned %d symbols, want none", tt.query, len(got))
				}
				return
			}
			if !containsID(got, tt.wantID) {
				t.Errorf("Search(%q) did not include %s", tt.query, tt.wantID)
			}
		})
	}
}

func TestSearchEmptyQueryReturnsFullLibrary(t *testing.T) {
	got := Search("")
	if len(got) != len(All()) {
		t.Errorf("Search(\"\") returned %d symbols, want full library of %d", len(got), len(All()))
	}
}

func TestSearchOnlyReturnsMatches(t *testing.T) {
	for _, s := range Search("meal") {
		if !symbolMatches(s, "meal", "meal") {
			t.Errorf("Search(\"meal\") included non-matching symbol %s", s.ID)
		}
	}
}

func TestByCategory(t *testing.T) {
	buckets := ByCategory()

	for _, c := range Categories() {
		if _, ok := buckets[c]; !ok {
			t.Errorf("ByCategory() missing bucket for %s", c)
		}
	}

	food := buckets[models.CategoryFood]
	if len(food) == 0 {
		t.Fatal("expected food symbols")
	}
	// Buckets preserve catalog order.
	if food[0].ID != "food-roti" {
		t.Errorf("first food symbol = %s, want food-roti", food[0].ID)
	}
	for _, s := range food {
		if s.Category != models.CategoryFood {
			t.Errorf("food bucket contains %s with category %s", s.ID, s.Category)
		}
	}
}

func TestByID(t *testing.T) {
	s, err := ByID("food-roti")
	if err != nil {
		t.Fatalf("ByID(food-roti): %v", err)
	}
	if s.Labels.English != "Roti" {
		t.Errorf("english label = %q, want Roti", s.Labels.English)
	}

	if _, err := ByID("nope"); err != ErrNotFound {
		t.Errorf("ByID(nope) err = %v, want ErrNotFound", err)
	}
}

func TestLibraryIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range All() {
		if seen[s.ID] {
			t.Errorf("duplicate symbol id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func containsID(symbols []models.Symbol, id string) bool {
	for _, s := range symbols {
		if s.ID == id {
			return true
		}
	}
	return false
}
