package builder

import (
	"testing"
	"time"

	"chitraboard/internal/models"
)

func TestBoardResizeDiscardsContents(t *testing.T) {
	b := NewBoardBuilder("My Board")
	if err := b.PlaceSymbol(0, "food-roti"); err != nil {
		t.Fatalf("PlaceSymbol: %v", err)
	}
	if b.Board().Cells[0].SymbolID != "food-roti" {
		t.Fatal("symbol not placed")
	}

	// 3x3 -> 2x2 -> 3x3: contents are never preserved across a resize.
	if err := b.SetPreset(models.Grid2x2); err != nil {
		t.Fatalf("SetPreset 2x2: %v", err)
	}
	for i, cell := range b.Board().Cells {
		if !cell.IsEmpty() {
			t.Errorf("cell %d not empty after resize", i)
		}
	}

	if err := b.SetPreset(models.Grid3x3); err != nil {
		t.Fatalf("SetPreset 3x3: %v", err)
	}
	board := b.Board()
	if len(board.Cells) != 9 {
		t.Fatalf("got %d cells, want 9", len(board.Cells))
	}
	for i, cell := range board.Cells {
		if !cell.IsEmpty() {
			t.Errorf("cell %d not empty after resize back", i)
		}
	}
}

func TestBoardCustomGridBounds(t *testing.T) {
	tests := []struct {
		name    string
		rows    int
		cols    int
		wantErr bool
	}{
		{name: "minimal", rows: 1, cols: 1, wantErr: false},
		{name: "maximal", rows: 10, cols: 10, wantErr: false},
		{name: "rectangular", rows: 2, cols: 5, wantErr: false},
		{name: "rows too large", rows: 11, cols: 3, wantErr: true},
		{name: "cols too large", rows: 3, cols: 11, wantErr: true},
		{name: "zero rows", rows: 0, cols: 3, wantErr: true},
		{name: "negative cols", rows: 3, cols: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoardBuilder("Board")
			err := b.SetCustomGrid(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetCustomGrid(%d,%d) err = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if !tt.wantErr {
				board := b.Board()
				if board.Rows != tt.rows || board.Cols != tt.cols || len(board.Cells) != tt.rows*tt.cols {
					t.Errorf("grid = %dx%d with %d cells", board.Rows, board.Cols, len(board.Cells))
				}
			}
		})
	}
}

func TestBoardRejectedResizeLeavesGridUntouched(t *testing.T) {
	b := NewBoardBuilder("Board")
	if err := b.PlaceSymbol(4, "food-dosa"); err != nil {
		t.Fatalf("PlaceSymbol: %v", err)
	}

	if err := b.SetCustomGrid(11, 2); err == nil {
		t.Fatal("expected validation error for rows=11")
	}

	board := b.Board()
	if board.Rows != 3 || board.Cols != 3 {
		t.Errorf("grid changed to %dx%d after rejected resize", board.Rows, board.Cols)
	}
	if board.Cells[4].SymbolID != "food-dosa" {
		t.Error("cell contents lost after rejected resize")
	}
}

func TestBoardPlaceSymbolDefaultsLabel(t *testing.T) {
	b := NewBoardBuilder("Board")
	if err := b.PlaceSymbol(0, "food-roti"); err != nil {
		t.Fatalf("PlaceSymbol: %v", err)
	}

	cell := b.Board().Cells[0]
	if cell.Label != "Roti" || cell.AudioText != "Roti" {
		t.Errorf("cell label/audio = %q/%q, want Roti/Roti", cell.Label, cell.AudioText)
	}

	// Label stays editable after placement.
	if err := b.SetCellLabel(0, "Chapati"); err != nil {
		t.Fatalf("SetCellLabel: %v", err)
	}
	if got := b.Board().Cells[0].Label; got != "Chapati" {
		t.Errorf("label = %q, want Chapati", got)
	}
}

func TestBoardFinalizeChecksResumedGrid(t *testing.T) {
	filled := []models.AACCell{{ID: "c1", Label: "Roti"}}

	tests := []struct {
		name  string
		board models.AACBoard
	}{
		{
			name:  "rows above maximum",
			board: models.AACBoard{ID: "b1", Name: "Big", Rows: 11, Cols: 1, Cells: filled},
		},
		{
			name:  "cols above maximum",
			board: models.AACBoard{ID: "b2", Name: "Wide", Rows: 1, Cols: 11, Cells: filled},
		},
		{
			name:  "zero rows",
			board: models.AACBoard{ID: "b3", Name: "Flat", Rows: 0, Cols: 3, Cells: filled},
		},
		{
			name: "cell count does not match grid",
			board: models.AACBoard{ID: "b4", Name: "Short", Rows: 2, Cols: 2,
				Cells: []models.AACCell{{ID: "c1", Label: "Roti"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EditBoard(tt.board).Finalize(time.Now()); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBoardFinalize(t *testing.T) {
	b := NewBoardBuilder("Board")

	// Empty board cannot be saved.
	if _, err := b.Finalize(time.Now()); err == nil {
		t.Fatal("expected error for empty board")
	}

	if err := b.PlaceSymbol(0, "food-roti"); err != nil {
		t.Fatalf("PlaceSymbol: %v", err)
	}

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	board, err := b.Finalize(first)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !board.CreatedAt.Equal(first) || !board.UpdatedAt.Equal(first) {
		t.Error("first save should stamp both timestamps")
	}

	second := first.Add(time.Hour)
	b2 := EditBoard(board)
	board2, err := b2.Finalize(second)
	if err != nil {
		t.Fatalf("Finalize again: %v", err)
	}
	if !board2.CreatedAt.Equal(first) {
		t.Error("CreatedAt must not change on re-save")
	}
	if !board2.UpdatedAt.Equal(second) {
		t.Error("UpdatedAt must refresh on re-save")
	}
}
