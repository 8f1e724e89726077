package builder

import (
	"time"

	"github.com/google/uuid"

	"chitraboard/internal/models"
	"chitraboard/internal/symbols"
	"chitraboard/internal/validation"
)

// MatchingBuilder is an editing session over one matching activity.
type MatchingBuilder struct {
	activity models.Activity
}

// NewMatchingBuilder starts a matching activity session.
func NewMatchingBuilder(therapistID, name string) *MatchingBuilder {
	return &MatchingBuilder{
		activity: models.Activity{
			ID:          uuid.New().String(),
			TherapistID: therapistID,
			Name:        name,
			Type:        models.ActivityMatching,
		},
	}
}

// EditMatching resumes a session over an existing matching activity.
func EditMatching(activity models.Activity) *MatchingBuilder {
	return &MatchingBuilder{activity: activity}
}

// Activity returns a copy of the document being edited.
func (b *MatchingBuilder) Activity() models.Activity {
	out := b.activity
	out.Content.Questions = make([]models.MatchingQuestion, len(b.activity.Content.Questions))
	for i, q := range b.activity.Content.Questions {
		opts := make([]models.MatchingOption, len(q.Options))
		copy(opts, q.Options)
		q.Options = opts
		out.Content.Questions[i] = q
	}
	return out
}

// SetName sets the activity name.
func (b *MatchingBuilder) SetName(name string) {
	b.activity.Name = name
}

// AddQuestion appends an empty question and returns its index.
func (b *MatchingBuilder) AddQuestion() int {
	b.activity.Content.Questions = append(b.activity.Content.Questions, models.MatchingQuestion{
		ID: uuid.New().String(),
	})
	return len(b.activity.Content.Questions) - 1
}

// RemoveQuestion deletes the question at index.
func (b *MatchingBuilder) RemoveQuestion(index int) error {
	qs := b.activity.Content.Questions
	if index < 0 || index >= len(qs) {
		return validation.Error{Field: "question", Message: "question index out of range"}
	}
	b.activity.Content.Questions = append(qs[:index], qs[index+1:]...)
	return nil
}

// SetPrompt sets the prompt symbol of the question at index.
func (b *MatchingBuilder) SetPrompt(index int, symbolID string) error {
	q, err := b.question(index)
	if err != nil {
		return err
	}
	sym, err := symbols.ByID(symbolID)
	if err != nil {
		return validation.Error{Field: "symbol", Message: "unknown symbol"}
	}
	q.PromptSymbolID = sym.ID
	return nil
}

// AddOption appends an answer option to the question at index. The
// first option added becomes the correct answer until reassigned.
func (b *MatchingBuilder) AddOption(index int, symbolID string) (string, error) {
	q, err := b.question(index)
	if err != nil {
		return "", err
	}
	sym, err := symbols.ByID(symbolID)
	if err != nil {
		return "", validation.Error{Field: "symbol", Message: "unknown symbol"}
	}

	opt := models.MatchingOption{
		ID:       uuid.New().String(),
		SymbolID: sym.ID,
		Label:    sym.Labels.English,
	}
	q.Options = append(q.Options, opt)
	if len(q.Options) == 1 {
		q.CorrectOptionID = opt.ID
	}
	return opt.ID, nil
}

// RemoveOption deletes an option. Removing the correct option moves the
// correct mark to the first remaining option, if any remain.
func (b *MatchingBuilder) RemoveOption(index int, optionID string) error {
	q, err := b.question(index)
	if err != nil {
		return err
	}

	kept := q.Options[:0]
	for _, opt := range q.Options {
		if opt.ID != optionID {
			kept = append(kept, opt)
		}
	}
	q.Options = kept

	if q.CorrectOptionID == optionID {
		q.CorrectOptionID = ""
		if len(q.Options) > 0 {
			q.CorrectOptionID = q.Options[0].ID
		}
	}
	return nil
}

// SetCorrectOption designates the correct answer for the question at
// index. The option must exist on that question.
func (b *MatchingBuilder) SetCorrectOption(index int, optionID string) error {
	q, err := b.question(index)
	if err != nil {
		return err
	}
	for _, opt := range q.Options {
		if opt.ID == optionID {
			q.CorrectOptionID = optionID
			return nil
		}
	}
	return validation.Error{Field: "option", Message: "option not found on question"}
}

func (b *MatchingBuilder) question(index int) (*models.MatchingQuestion, error) {
	if index < 0 || index >= len(b.activity.Content.Questions) {
		return nil, validation.Error{Field: "question", Message: "question index out of range"}
	}
	return &b.activity.Content.Questions[index], nil
}

// ValidateMatchingContent checks the rules every saved matching activity
// must satisfy: at least one question, and per question a prompt symbol,
// two or more options and a correct answer that is one of them. Both the
// builder and the publish path enforce these.
func ValidateMatchingContent(content models.MatchingContent) error {
	if len(content.Questions) == 0 {
		return validation.Error{Field: "questions", Message: "activity needs at least one question"}
	}
	for _, q := range content.Questions {
		if q.PromptSymbolID == "" {
			return validation.Error{Field: "questions", Message: "every question needs a prompt symbol"}
		}
		if len(q.Options) < 2 {
			return validation.Error{Field: "questions", Message: "every question needs at least 2 answer options"}
		}
		if !hasOption(q.Options, q.CorrectOptionID) {
			return validation.Error{Field: "questions", Message: "every question needs a correct answer"}
		}
	}
	return nil
}

func hasOption(options []models.MatchingOption, id string) bool {
	if id == "" {
		return false
	}
	for _, opt := range options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// Validate checks whether the activity can be saved.
func (b *MatchingBuilder) Validate() error {
	if err := validation.ValidateDocumentName(b.activity.Name); err != nil {
		return err
	}
	return ValidateMatchingContent(b.activity.Content)
}

// Finalize validates the activity and stamps timestamps.
func (b *MatchingBuilder) Finalize(now time.Time) (models.Activity, error) {
	if err := b.Validate(); err != nil {
		return models.Activity{}, err
	}
	if b.activity.CreatedAt.IsZero() {
		b.activity.CreatedAt = now
	}
	b.activity.UpdatedAt = now
	return b.Activity(), nil
}
