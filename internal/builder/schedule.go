package builder

import (
	"time"

	"github.com/google/uuid"

	"chitraboard/internal/models"
	"chitraboard/internal/symbols"
	"chitraboard/internal/validation"
)

// ScheduleBuilder is an editing session over one visual schedule.
type ScheduleBuilder struct {
	schedule models.VisualSchedule
}

// NewScheduleBuilder starts a schedule session with no steps.
func NewScheduleBuilder(name string) *ScheduleBuilder {
	return &ScheduleBuilder{
		schedule: models.VisualSchedule{
			ID:   uuid.New().String(),
			Name: name,
		},
	}
}

// EditSchedule resumes a session over an existing schedule document.
func EditSchedule(schedule models.VisualSchedule) *ScheduleBuilder {
	return &ScheduleBuilder{schedule: schedule}
}

// Schedule returns a copy of the document being edited.
func (b *ScheduleBuilder) Schedule() models.VisualSchedule {
	out := b.schedule
	out.Steps = make([]models.ScheduleStep, len(b.schedule.Steps))
	copy(out.Steps, b.schedule.Steps)
	return out
}

// SetName sets the schedule name.
func (b *ScheduleBuilder) SetName(name string) {
	b.schedule.Name = name
}

// AddStep appends a step for the given symbol, defaulting its label to
// the symbol's English name.
func (b *ScheduleBuilder) AddStep(symbolID string) error {
	sym, err := symbols.ByID(symbolID)
	if err != nil {
		return validation.Error{Field: "symbol", Message: "unknown symbol"}
	}
	b.schedule.Steps = append(b.schedule.Steps, models.ScheduleStep{
		ID:       uuid.New().String(),
		SymbolID: sym.ID,
		Label:    sym.Labels.English,
		Order:    len(b.schedule.Steps),
	})
	return nil
}

// SetStepLabel overwrites the label of the step at index.
func (b *ScheduleBuilder) SetStepLabel(index int, label string) error {
	if index < 0 || index >= len(b.schedule.Steps) {
		return validation.Error{Field: "step", Message: "step index out of range"}
	}
	b.schedule.Steps[index].Label = label
	return nil
}

// RemoveStep deletes the step at index and renumbers the rest.
func (b *ScheduleBuilder) RemoveStep(index int) error {
	if index < 0 || index >= len(b.schedule.Steps) {
		return validation.Error{Field: "step", Message: "step index out of range"}
	}
	b.schedule.Steps = append(b.schedule.Steps[:index], b.schedule.Steps[index+1:]...)
	b.renumber()
	return nil
}

// MoveUp swaps the step at index with the one before it. Moving the
// first step up is a no-op.
func (b *ScheduleBuilder) MoveUp(index int) {
	if index <= 0 || index >= len(b.schedule.Steps) {
		return
	}
	b.schedule.Steps[index-1], b.schedule.Steps[index] = b.schedule.Steps[index], b.schedule.Steps[index-1]
	b.renumber()
}

// MoveDown swaps the step at index with the one after it. Moving the
// last step down is a no-op.
func (b *ScheduleBuilder) MoveDown(index int) {
	if index < 0 || index >= len(b.schedule.Steps)-1 {
		return
	}
	b.schedule.Steps[index], b.schedule.Steps[index+1] = b.schedule.Steps[index+1], b.schedule.Steps[index]
	b.renumber()
}

func (b *ScheduleBuilder) renumber() {
	for i := range b.schedule.Steps {
		b.schedule.Steps[i].Order = i
	}
}

// Validate checks whether the schedule can be saved.
func (b *ScheduleBuilder) Validate() error {
	if err := validation.ValidateDocumentName(b.schedule.Name); err != nil {
		return err
	}
	if len(b.schedule.Steps) == 0 {
		return validation.Error{Field: "steps", Message: "schedule needs at least one step"}
	}
	return nil
}

// Finalize validates the schedule and stamps timestamps.
func (b *ScheduleBuilder) Finalize(now time.Time) (models.VisualSchedule, error) {
	if err := b.Validate(); err != nil {
		return models.VisualSchedule{}, err
	}
	if b.schedule.CreatedAt.IsZero() {
		b.schedule.CreatedAt = now
	}
	b.schedule.UpdatedAt = now
	return b.Schedule(), nil
}
