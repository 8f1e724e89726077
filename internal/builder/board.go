// Package builder holds the stateful editing sessions behind the three
// content editors: AAC boards, visual schedules and matching activities.
// A builder accumulates therapist selections against the symbol library
// and produces a whole document on save; saved documents replace any
// prior version with the same id.
package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"chitraboard/internal/models"
	"chitraboard/internal/symbols"
	"chitraboard/internal/validation"
)

// BoardBuilder is an editing session over one AAC board document.
type BoardBuilder struct {
	board models.AACBoard
}

// NewBoardBuilder starts a board session with the default 3x3 grid.
func NewBoardBuilder(name string) *BoardBuilder {
	b := &BoardBuilder{
		board: models.AACBoard{
			ID:   uuid.New().String(),
			Name: name,
		},
	}
	_ = b.SetPreset(models.Grid3x3)
	return b
}

// EditBoard resumes a session over an existing board document.
func EditBoard(board models.AACBoard) *BoardBuilder {
	return &BoardBuilder{board: board}
}

// Board returns a copy of the document being edited.
func (b *BoardBuilder) Board() models.AACBoard {
	out := b.board
	out.Cells = make([]models.AACCell, len(b.board.Cells))
	copy(out.Cells, b.board.Cells)
	return out
}

// SetName sets the board name.
func (b *BoardBuilder) SetName(name string) {
	b.board.Name = name
}

// SetPreset switches to a fixed grid layout. Any resize discards all
// existing cell contents.
func (b *BoardBuilder) SetPreset(preset models.GridPreset) error {
	rows, cols, ok := preset.Dimensions()
	if !ok {
		return validation.Error{Field: "grid", Message: fmt.Sprintf("unknown grid preset %q", preset)}
	}
	b.reinitGrid(rows, cols)
	return nil
}

// SetCustomGrid switches to a rows x cols layout. Both dimensions must
// be within [1,10]; out-of-range requests leave the grid untouched.
func (b *BoardBuilder) SetCustomGrid(rows, cols int) error {
	if rows < models.MinGridDimension || rows > models.MaxGridDimension {
		return validation.Error{Field: "rows", Message: fmt.Sprintf("rows must be between %d and %d", models.MinGridDimension, models.MaxGridDimension)}
	}
	if cols < models.MinGridDimension || cols > models.MaxGridDimension {
		return validation.Error{Field: "cols", Message: fmt.Sprintf("cols must be between %d and %d", models.MinGridDimension, models.MaxGridDimension)}
	}
	b.reinitGrid(rows, cols)
	return nil
}

// reinitGrid replaces every cell with a fresh empty one. There is no
// content-preserving resize.
func (b *BoardBuilder) reinitGrid(rows, cols int) {
	b.board.Rows = rows
	b.board.Cols = cols
	b.board.Cells = make([]models.AACCell, rows*cols)
	for i := range b.board.Cells {
		b.board.Cells[i] = models.AACCell{ID: uuid.New().String()}
	}
}

// PlaceSymbol puts a symbol in the cell at index, defaulting the display
// label and spoken text to the symbol's English name.
func (b *BoardBuilder) PlaceSymbol(index int, symbolID string) error {
	if index < 0 || index >= len(b.board.Cells) {
		return validation.Error{Field: "cell", Message: "cell index out of range"}
	}
	sym, err := symbols.ByID(symbolID)
	if err != nil {
		return validation.Error{Field: "symbol", Message: "unknown symbol"}
	}

	cell := &b.board.Cells[index]
	cell.SymbolID = sym.ID
	cell.Label = sym.Labels.English
	cell.AudioText = sym.Labels.English
	return nil
}

// SetCellLabel overwrites the display label of the cell at index.
func (b *BoardBuilder) SetCellLabel(index int, label string) error {
	if index < 0 || index >= len(b.board.Cells) {
		return validation.Error{Field: "cell", Message: "cell index out of range"}
	}
	b.board.Cells[index].Label = label
	return nil
}

// SetCellAudioText overwrites the spoken text of the cell at index.
func (b *BoardBuilder) SetCellAudioText(index int, text string) error {
	if index < 0 || index >= len(b.board.Cells) {
		return validation.Error{Field: "cell", Message: "cell index out of range"}
	}
	b.board.Cells[index].AudioText = text
	return nil
}

// ClearCell empties the cell at index.
func (b *BoardBuilder) ClearCell(index int) error {
	if index < 0 || index >= len(b.board.Cells) {
		return validation.Error{Field: "cell", Message: "cell index out of range"}
	}
	b.board.Cells[index] = models.AACCell{ID: uuid.New().String()}
	return nil
}

// Validate checks whether the board can be saved: it needs a name, a
// grid within bounds with a matching cell count, and at least one
// populated cell. Resumed documents get the same grid checks as the
// editing operations.
func (b *BoardBuilder) Validate() error {
	if err := validation.ValidateDocumentName(b.board.Name); err != nil {
		return err
	}
	if b.board.Rows < models.MinGridDimension || b.board.Rows > models.MaxGridDimension {
		return validation.Error{Field: "rows", Message: fmt.Sprintf("rows must be between %d and %d", models.MinGridDimension, models.MaxGridDimension)}
	}
	if b.board.Cols < models.MinGridDimension || b.board.Cols > models.MaxGridDimension {
		return validation.Error{Field: "cols", Message: fmt.Sprintf("cols must be between %d and %d", models.MinGridDimension, models.MaxGridDimension)}
	}
	if len(b.board.Cells) != b.board.Rows*b.board.Cols {
		return validation.Error{Field: "cells", Message: "cell count does not match the grid size"}
	}
	for _, cell := range b.board.Cells {
		if !cell.IsEmpty() {
			return nil
		}
	}
	return validation.Error{Field: "cells", Message: "board needs at least one filled cell"}
}

// Finalize validates the board and stamps timestamps: CreatedAt on the
// first save only, UpdatedAt on every save.
func (b *BoardBuilder) Finalize(now time.Time) (models.AACBoard, error) {
	if err := b.Validate(); err != nil {
		return models.AACBoard{}, err
	}
	if b.board.CreatedAt.IsZero() {
		b.board.CreatedAt = now
	}
	b.board.UpdatedAt = now
	return b.Board(), nil
}
