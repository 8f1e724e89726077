package models

import (
	"testing"
	"time"
)

func TestSessionIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{
			name:      "future expiration",
			expiresAt: time.Now().Add(1 * time.Hour),
			want:      false,
		},
		{
			name:      "just expired",
			expiresAt: time.Now().Add(-1 * time.Second),
			want:      true,
		},
		{
			name:      "expired yesterday",
			expiresAt: time.Now().Add(-24 * time.Hour),
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := Session{
				ID:        "test-session",
				ProfileID: "profile-1",
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			if got := session.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignmentStatusTransitions(t *testing.T) {
	tests := []struct {
		name string
		from AssignmentStatus
		to   AssignmentStatus
		want bool
	}{
		{"assigned to in_progress", StatusAssigned, StatusInProgress, true},
		{"in_progress to completed", StatusInProgress, StatusCompleted, true},
		{"assigned straight to completed", StatusAssigned, StatusCompleted, false},
		{"completed back to in_progress", StatusCompleted, StatusInProgress, false},
		{"in_progress back to assigned", StatusInProgress, StatusAssigned, false},
		{"same status", StatusAssigned, StatusAssigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
				t.Errorf("CanAdvanceTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestGridPresetDimensions(t *testing.T) {
	tests := []struct {
		preset GridPreset
		rows   int
		cols   int
		ok     bool
	}{
		{Grid2x2, 2, 2, true},
		{Grid3x3, 3, 3, true},
		{Grid4x4, 4, 4, true},
		{GridPreset("5x5"), 0, 0, false},
		{GridPreset(""), 0, 0, false},
	}

	for _, tt := range tests {
		rows, cols, ok := tt.preset.Dimensions()
		if rows != tt.rows || cols != tt.cols || ok != tt.ok {
			t.Errorf("Dimensions(%q) = %d, %d, %v; want %d, %d, %v",
				tt.preset, rows, cols, ok, tt.rows, tt.cols, tt.ok)
		}
	}
}

func TestAACCellIsEmpty(t *testing.T) {
	if !(AACCell{ID: "c1"}).IsEmpty() {
		t.Error("cell with only an id should be empty")
	}
	if (AACCell{ID: "c1", Label: "Roti"}).IsEmpty() {
		t.Error("cell with a label should not be empty")
	}
	if (AACCell{ID: "c1", SymbolID: "food-roti"}).IsEmpty() {
		t.Error("cell with a symbol should not be empty")
	}
	if (AACCell{ID: "c1", AudioText: "I want roti"}).IsEmpty() {
		t.Error("cell with audio text should not be empty")
	}
}

func TestResourceIsFree(t *testing.T) {
	free := Resource{PriceCents: 0}
	if !free.IsFree() {
		t.Error("zero price should be free")
	}
	paid := Resource{PriceCents: 9900}
	if paid.IsFree() {
		t.Error("priced resource should not be free")
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{"admin", "therapist", "child", "parent"} {
		if !ValidRole(role) {
			t.Errorf("ValidRole(%q) = false, want true", role)
		}
	}
	for _, role := range []string{"", "teacher", "Admin"} {
		if ValidRole(role) {
			t.Errorf("ValidRole(%q) = true, want false", role)
		}
	}
}

func TestValidResourceType(t *testing.T) {
	for _, rt := range []string{"aac_board", "visual_schedule", "matching_activity", "sorting_activity", "custom"} {
		if !ValidResourceType(rt) {
			t.Errorf("ValidResourceType(%q) = false, want true", rt)
		}
	}
	if ValidResourceType("worksheet") {
		t.Error(`ValidResourceType("worksheet") = true, want false`)
	}
}
