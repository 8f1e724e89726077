package models

import "time"

// Grid size bounds for custom AAC board layouts.
const (
	MinGridDimension = 1
	MaxGridDimension = 10
)

// GridPreset names one of the fixed board layouts.
type GridPreset string

const (
	Grid2x2 GridPreset = "2x2"
	Grid3x3 GridPreset = "3x3"
	Grid4x4 GridPreset = "4x4"
)

// Dimensions returns the rows and cols for a preset, or false for an
// unknown preset.
func (g GridPreset) Dimensions() (rows, cols int, ok bool) {
	switch g {
	case Grid2x2:
		return 2, 2, true
	case Grid3x3:
		return 3, 3, true
	case Grid4x4:
		return 4, 4, true
	}
	return 0, 0, false
}

// AACCell is one slot on an AAC board. A cell without a symbol is empty;
// label and spoken text are freely editable by the therapist.
type AACCell struct {
	ID        string `json:"id"`
	SymbolID  string `json:"symbol_id,omitempty"`
	Label     string `json:"label"`
	AudioText string `json:"audio_text,omitempty"`
}

// IsEmpty reports whether the cell has no content.
func (c AACCell) IsEmpty() bool {
	return c.SymbolID == "" && c.Label == "" && c.AudioText == ""
}

// AACBoard is a communication board document. Boards are saved and
// replaced whole; there are no partial updates.
type AACBoard struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Cells     []AACCell `json:"cells"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScheduleStep is one entry of a visual schedule. Completed is a
// view-side flag and is never persisted back.
type ScheduleStep struct {
	ID        string `json:"id"`
	SymbolID  string `json:"symbol_id"`
	Label     string `json:"label"`
	Order     int    `json:"order"`
	Completed bool   `json:"completed,omitempty"`
}

// VisualSchedule is an ordered sequence of steps, saved and replaced
// whole like a board.
type VisualSchedule struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Steps     []ScheduleStep `json:"steps"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
