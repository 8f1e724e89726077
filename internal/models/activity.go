package models

import "time"

// ActivityType names the kinds of playable activities.
type ActivityType string

const (
	ActivityMatching ActivityType = "matching"
	ActivitySorting  ActivityType = "sorting"
	ActivityChoice   ActivityType = "choice"
	ActivitySchedule ActivityType = "schedule"
	ActivityAAC      ActivityType = "aac"
)

// MatchingOption is one selectable answer for a matching question.
type MatchingOption struct {
	ID       string `json:"id"`
	SymbolID string `json:"symbol_id"`
	Label    string `json:"label"`
}

// MatchingQuestion pairs a prompt symbol with answer options. A valid
// question has a prompt symbol, at least two options and exactly one
// designated correct option.
type MatchingQuestion struct {
	ID              string           `json:"id"`
	PromptSymbolID  string           `json:"prompt_symbol_id"`
	Options         []MatchingOption `json:"options"`
	CorrectOptionID string           `json:"correct_option_id"`
}

// MatchingContent is the content document of a matching activity.
type MatchingContent struct {
	Questions []MatchingQuestion `json:"questions"`
}

// Activity is a playable activity authored by a therapist. Content is
// stored as a JSON document whose shape depends on Type.
type Activity struct {
	ID          string          `json:"id"`
	TherapistID string          `json:"therapist_id"`
	Name        string          `json:"name"`
	Type        ActivityType    `json:"type"`
	Content     MatchingContent `json:"content"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AssignmentStatus is the per-assignment progress state. Transitions are
// strictly forward: assigned, then in_progress, then completed.
type AssignmentStatus string

const (
	StatusAssigned   AssignmentStatus = "assigned"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
)

// CanAdvanceTo reports whether moving from s to next is a legal forward
// transition. Completed is absorbing.
func (s AssignmentStatus) CanAdvanceTo(next AssignmentStatus) bool {
	switch s {
	case StatusAssigned:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	}
	return false
}

// Assignment links one activity to one child and one therapist.
type Assignment struct {
	ID          string           `json:"id"`
	ActivityID  string           `json:"activity_id"`
	ChildID     string           `json:"child_id"`
	TherapistID string           `json:"therapist_id"`
	Status      AssignmentStatus `json:"status"`
	DueDate     *time.Time       `json:"due_date,omitempty"`
	AssignedAt  time.Time        `json:"assigned_at"`
}

// ActivityResponse is one completed play-through of an assigned
// activity. Responses are immutable once created; replays create new
// rows, and "last result" means the most recent by CompletedAt.
type ActivityResponse struct {
	ID               string            `json:"id"`
	AssignmentID     string            `json:"assignment_id"`
	ChildID          string            `json:"child_id"`
	ActivityID       string            `json:"activity_id"`
	Answers          map[string]string `json:"answers"`
	Score            int               `json:"score"`
	TotalQuestions   int               `json:"total_questions"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
	CompletedAt      time.Time         `json:"completed_at"`
}

// AssignmentWithActivity combines an assignment with its activity for
// the child dashboard.
type AssignmentWithActivity struct {
	Assignment Assignment `json:"assignment"`
	Activity   Activity   `json:"activity"`
}
