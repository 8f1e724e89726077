// Package grading turns a child's play-through of a matching activity
// into a scored response and aggregates responses into progress
// figures. Everything here is pure; storage lookups stay in the
// service layer.
package grading

import (
	"math"

	"chitraboard/internal/models"
)

// Score counts the questions where the child's selected option matches
// the question's designated correct option. Unanswered questions count
// as wrong.
func Score(questions []models.MatchingQuestion, answers map[string]string) int {
	score := 0
	for _, q := range questions {
		if selected, ok := answers[q.ID]; ok && selected == q.CorrectOptionID {
			score++
		}
	}
	return score
}

// Percentage converts a correct/total pair into a rounded whole-number
// percentage. Zero totals yield 0, never a division error.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// AveragePercent aggregates the score percentage across responses: the
// sum of scores over the sum of question counts. No responses, or
// responses with zero questions, yield 0.
func AveragePercent(responses []models.ActivityResponse) int {
	totalScore := 0
	totalQuestions := 0
	for _, r := range responses {
		totalScore += r.Score
		totalQuestions += r.TotalQuestions
	}
	return Percentage(totalScore, totalQuestions)
}

// Latest returns the most recent response by completion timestamp, or
// nil for an empty slice. Replays append responses, so "last result"
// always means latest CompletedAt.
func Latest(responses []models.ActivityResponse) *models.ActivityResponse {
	var latest *models.ActivityResponse
	for i := range responses {
		if latest == nil || responses[i].CompletedAt.After(latest.CompletedAt) {
			latest = &responses[i]
		}
	}
	return latest
}

// ChildProgress is the aggregated view of one child's work.
type ChildProgress struct {
	TotalAssignments     int    `json:"total_assignments"`
	CompletedAssignments int    `json:"completed_assignments"`
	AverageScore         int    `json:"average_score"`
	LastActivityID       string `json:"last_activity_id,omitempty"`
	LastActivityName     string `json:"last_activity_name,omitempty"`
}

// ComputeChildProgress aggregates a child's assignments and responses.
// activityNames maps activity id to display name for the most-recent
// activity lookup; a missing name leaves LastActivityName empty.
func ComputeChildProgress(assignments []models.Assignment, responses []models.ActivityResponse, activityNames map[string]string) ChildProgress {
	progress := ChildProgress{
		TotalAssignments: len(assignments),
		AverageScore:     AveragePercent(responses),
	}
	for _, a := range assignments {
		if a.Status == models.StatusCompleted {
			progress.CompletedAssignments++
		}
	}
	if last := Latest(responses); last != nil {
		progress.LastActivityID = last.ActivityID
		progress.LastActivityName = activityNames[last.ActivityID]
	}
	return progress
}

// DistinctChildIDs returns the unique child ids across assignments, in
// first-seen order.
func DistinctChildIDs(assignments []models.Assignment) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, a := range assignments {
		if !seen[a.ChildID] {
			seen[a.ChildID] = true
			ids = append(ids, a.ChildID)
		}
	}
	return ids
}
