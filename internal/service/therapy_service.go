package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chitraboard/internal/authz"
	"chitraboard/internal/builder"
	"chitraboard/internal/grading"
	"chitraboard/internal/models"
	"chitraboard/internal/repository"
	"chitraboard/internal/validation"
)

var (
	ErrActivityNotFound   = errors.New("activity not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrNotYours           = errors.New("not the owner of this item")
	ErrAlreadyAssigned    = errors.New("activity already assigned to this child")
	ErrNotAChild          = errors.New("target profile is not a child account")
	ErrNotStarted         = errors.New("assignment has not been opened yet")
)

// TherapyService handles activity authoring, assignment and progress
// aggregation
type TherapyService struct {
	profileRepo    *repository.ProfileRepository
	activityRepo   *repository.ActivityRepository
	assignmentRepo *repository.AssignmentRepository
	responseRepo   *repository.ResponseRepository
	linkRepo       *repository.LinkRepository
}

// NewTherapyService creates a new therapy service
func NewTherapyService(
	profileRepo *repository.ProfileRepository,
	activityRepo *repository.ActivityRepository,
	assignmentRepo *repository.AssignmentRepository,
	responseRepo *repository.ResponseRepository,
	linkRepo *repository.LinkRepository,
) *TherapyService {
	return &TherapyService{
		profileRepo:    profileRepo,
		activityRepo:   activityRepo,
		assignmentRepo: assignmentRepo,
		responseRepo:   responseRepo,
		linkRepo:       linkRepo,
	}
}

// CreateActivity publishes an activity authored by a therapist. Matching
// content is validated here too, so drafts that skipped the builder
// cannot be published half-built.
func (s *TherapyService) CreateActivity(actor *models.Profile, name string, activityType models.ActivityType, content models.MatchingContent) (*models.Activity, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionAuthorContent) {
		return nil, ErrForbidden
	}
	if err := validation.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	if activityType == models.ActivityMatching {
		if err := builder.ValidateMatchingContent(content); err != nil {
			return nil, err
		}
	}

	activity, err := s.activityRepo.CreateActivity(actor.ID, name, activityType, content)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return activity, nil
}

// GetActivity returns one activity
func (s *TherapyService) GetActivity(id string) (*models.Activity, error) {
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

// ListActivities returns the actor's authored activities
func (s *TherapyService) ListActivities(actor *models.Profile) ([]models.Activity, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionAuthorContent) {
		return nil, ErrForbidden
	}
	activities, err := s.activityRepo.GetActivitiesByTherapist(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// UpdateActivity replaces an activity's name and content. Only the
// author (or an admin) may edit.
func (s *TherapyService) UpdateActivity(actor *models.Profile, id, name string, content models.MatchingContent) (*models.Activity, error) {
	activity, err := s.requireOwnedActivity(actor, id)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	if activity.Type == models.ActivityMatching {
		if err := builder.ValidateMatchingContent(content); err != nil {
			return nil, err
		}
	}

	if err := s.activityRepo.UpdateActivity(activity.ID, name, content); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return s.GetActivity(id)
}

// DeleteActivity removes an activity with its assignments and responses
func (s *TherapyService) DeleteActivity(actor *models.Profile, id string) error {
	activity, err := s.requireOwnedActivity(actor, id)
	if err != nil {
		return err
	}
	if err := s.activityRepo.DeleteActivity(activity.ID); err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}

func (s *TherapyService) requireOwnedActivity(actor *models.Profile, id string) (*models.Activity, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionAuthorContent) {
		return nil, ErrForbidden
	}
	activity, err := s.activityRepo.GetActivityByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}
	if activity.TherapistID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, ErrNotYours
	}
	return activity, nil
}

// AssignableChildren returns the child profiles an activity can still
// be assigned to, excluding children who already have it.
func (s *TherapyService) AssignableChildren(actor *models.Profile, activityID string) ([]models.Profile, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionAssignActivity) {
		return nil, ErrForbidden
	}

	children, err := s.profileRepo.GetProfilesByRole(models.RoleChild)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}

	var assignable []models.Profile
	for _, child := range children {
		exists, err := s.assignmentRepo.AssignmentExists(activityID, child.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment: %w", err)
		}
		if !exists {
			assignable = append(assignable, child)
		}
	}
	return assignable, nil
}

// AssignResult reports the per-child outcome of a bulk assignment.
type AssignResult struct {
	Assigned []models.Assignment `json:"assigned"`
	Skipped  map[string]string   `json:"skipped,omitempty"` // child id -> reason
}

// AssignActivity assigns an activity to one or more children. Children
// that cannot be assigned (unknown, wrong role, already assigned) are
// skipped with a reason; the rest succeed.
func (s *TherapyService) AssignActivity(actor *models.Profile, activityID string, childIDs []string, dueDate *time.Time) (*AssignResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionAssignActivity) {
		return nil, ErrForbidden
	}

	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	result := &AssignResult{Skipped: make(map[string]string)}
	for _, childID := range childIDs {
		child, err := s.profileRepo.GetProfileByID(childID)
		if err != nil {
			return nil, fmt.Errorf("failed to get child profile: %w", err)
		}
		if child == nil {
			result.Skipped[childID] = "profile not found"
			continue
		}
		if child.Role != models.RoleChild {
			result.Skipped[childID] = "not a child account"
			continue
		}

		exists, err := s.assignmentRepo.AssignmentExists(activityID, childID)
		if err != nil {
			return nil, fmt.Errorf("failed to check assignment: %w", err)
		}
		if exists {
			result.Skipped[childID] = "already assigned"
			continue
		}

		assignment, err := s.assignmentRepo.CreateAssignment(activityID, childID, actor.ID, dueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to create assignment: %w", err)
		}
		result.Assigned = append(result.Assigned, *assignment)
	}

	if len(result.Skipped) == 0 {
		result.Skipped = nil
	}
	return result, nil
}

// ChildAssignments returns a child's assignments with their activities
func (s *TherapyService) ChildAssignments(actor *models.Profile, childID string) ([]models.AssignmentWithActivity, error) {
	if err := s.canViewChild(actor, childID); err != nil {
		return nil, err
	}
	items, err := s.assignmentRepo.GetAssignmentsForChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	return items, nil
}

// OpenAssignment marks an assignment in progress when the child first
// opens it. Opening an already started or completed assignment changes
// nothing.
func (s *TherapyService) OpenAssignment(actor *models.Profile, assignmentID string) (*models.Assignment, error) {
	assignment, err := s.requireChildAssignment(actor, assignmentID)
	if err != nil {
		return nil, err
	}

	if assignment.Status.CanAdvanceTo(models.StatusInProgress) {
		if err := s.assignmentRepo.UpdateStatus(assignment.ID, models.StatusInProgress); err != nil {
			return nil, fmt.Errorf("failed to update status: %w", err)
		}
		assignment.Status = models.StatusInProgress
	}
	return assignment, nil
}

// SubmitResponse grades a play-through, stores the response and marks
// the assignment completed. Submitting an assignment that was never
// opened is rejected; the status machine only moves one step at a time.
// Replays of a completed assignment are stored as additional responses.
func (s *TherapyService) SubmitResponse(actor *models.Profile, assignmentID string, answers map[string]string, timeSpentSeconds int) (*models.ActivityResponse, error) {
	assignment, err := s.requireChildAssignment(actor, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status == models.StatusAssigned {
		return nil, ErrNotStarted
	}

	activity, err := s.activityRepo.GetActivityByID(assignment.ActivityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	if activity == nil {
		return nil, ErrActivityNotFound
	}

	score := grading.Score(activity.Content.Questions, answers)
	total := len(activity.Content.Questions)

	response, err := s.responseRepo.CreateResponse(assignment.ID, assignment.ChildID, activity.ID, answers, score, total, timeSpentSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to store response: %w", err)
	}

	if assignment.Status.CanAdvanceTo(models.StatusCompleted) {
		if err := s.assignmentRepo.UpdateStatus(assignment.ID, models.StatusCompleted); err != nil {
			return nil, fmt.Errorf("failed to complete assignment: %w", err)
		}
	}
	return response, nil
}

func (s *TherapyService) requireChildAssignment(actor *models.Profile, assignmentID string) (*models.Assignment, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionPlayActivity) {
		return nil, ErrForbidden
	}
	assignment, err := s.assignmentRepo.GetAssignmentByID(assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.ChildID != actor.ID {
		return nil, ErrNotYours
	}
	return assignment, nil
}

// LinkParentToChild creates a parent-child link. Therapist or admin
// only.
func (s *TherapyService) LinkParentToChild(actor *models.Profile, parentID, childID string) (*models.ParentChildLink, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionLinkParentChild) {
		return nil, ErrForbidden
	}

	parent, err := s.profileRepo.GetProfileByID(parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parent profile: %w", err)
	}
	if parent == nil || parent.Role != models.RoleParent {
		return nil, validation.Error{Field: "parent_id", Message: "not a parent account"}
	}

	child, err := s.profileRepo.GetProfileByID(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child profile: %w", err)
	}
	if child == nil || child.Role != models.RoleChild {
		return nil, ErrNotAChild
	}

	exists, err := s.linkRepo.LinkExists(parentID, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to check link: %w", err)
	}
	if exists {
		return nil, validation.Error{Field: "child_id", Message: "parent is already linked to this child"}
	}

	link, err := s.linkRepo.CreateLink(parentID, childID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

// NotifyAssigned emails the linked parents of every newly assigned
// child. Notification failures are logged, never surfaced: the
// assignments already exist.
func (s *TherapyService) NotifyAssigned(ctx context.Context, emailService *EmailService, activityID string, assigned []models.Assignment) {
	if emailService == nil || !emailService.IsEnabled() || len(assigned) == 0 {
		return
	}

	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil || activity == nil {
		log.Printf("Skipping assignment notifications for activity %s: %v", activityID, err)
		return
	}

	for _, assignment := range assigned {
		child, err := s.profileRepo.GetProfileByID(assignment.ChildID)
		if err != nil || child == nil {
			log.Printf("Skipping assignment notification for child %s: %v", assignment.ChildID, err)
			continue
		}
		parents, err := s.LinkedParents(child.ID)
		if err != nil {
			log.Printf("Skipping assignment notification for child %s: %v", child.ID, err)
			continue
		}
		for _, parent := range parents {
			if err := emailService.SendAssignmentEmail(ctx, parent.Email, parent.FullName, child.FullName, activity.Name); err != nil {
				log.Printf("Failed to notify parent %s: %v", parent.ID, err)
			}
		}
	}
}

// LinkedParents returns the parent profiles linked to a child.
func (s *TherapyService) LinkedParents(childID string) ([]models.Profile, error) {
	links, err := s.linkRepo.GetLinksForChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	var parents []models.Profile
	for _, link := range links {
		parent, err := s.profileRepo.GetProfileByID(link.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent profile: %w", err)
		}
		if parent != nil {
			parents = append(parents, *parent)
		}
	}
	return parents, nil
}

// canViewChild checks whether actor may see a child's assignments and
// progress: the child themselves, a linked parent, or any
// therapist/admin.
func (s *TherapyService) canViewChild(actor *models.Profile, childID string) error {
	if actor == nil {
		return ErrForbidden
	}
	if actor.ID == childID {
		return nil
	}
	if !authz.Can(actor.Role, authz.ActionViewChildren) {
		return ErrForbidden
	}
	if actor.Role == models.RoleParent {
		linked, err := s.linkRepo.LinkExists(actor.ID, childID)
		if err != nil {
			return fmt.Errorf("failed to check link: %w", err)
		}
		if !linked {
			return ErrForbidden
		}
	}
	return nil
}

// ChildProgress aggregates one child's assignments and responses.
func (s *TherapyService) ChildProgress(actor *models.Profile, childID string) (*grading.ChildProgress, error) {
	if err := s.canViewChild(actor, childID); err != nil {
		return nil, err
	}

	items, err := s.assignmentRepo.GetAssignmentsForChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}
	responses, err := s.responseRepo.GetResponsesForChild(childID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	assignments := make([]models.Assignment, 0, len(items))
	activityNames := make(map[string]string, len(items))
	for _, item := range items {
		assignments = append(assignments, item.Assignment)
		activityNames[item.Activity.ID] = item.Activity.Name
	}

	progress := grading.ComputeChildProgress(assignments, responses, activityNames)
	return &progress, nil
}

// ChildSummary pairs a child profile with their aggregated progress.
type ChildSummary struct {
	Child    models.Profile        `json:"child"`
	Progress grading.ChildProgress `json:"progress"`
}

// TherapistChildrenProgress aggregates progress for every child the
// therapist has assigned work to. Children whose profile can no longer
// be loaded are dropped from the report rather than failing it.
func (s *TherapyService) TherapistChildrenProgress(actor *models.Profile) ([]ChildSummary, error) {
	if actor == nil || !authz.Can(actor.Role, authz.ActionViewChildren) {
		return nil, ErrForbidden
	}

	assignments, err := s.assignmentRepo.GetAssignmentsByTherapist(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments: %w", err)
	}

	var summaries []ChildSummary
	for _, childID := range grading.DistinctChildIDs(assignments) {
		child, err := s.profileRepo.GetProfileByID(childID)
		if err != nil || child == nil {
			// One broken profile must not take the whole report down
			log.Printf("Skipping child %s in progress report: %v", childID, err)
			continue
		}

		progress, err := s.ChildProgress(actor, childID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ChildSummary{Child: *child, Progress: *progress})
	}
	return summaries, nil
}

// ParentChildrenProgress aggregates progress for every child linked to
// a parent.
func (s *TherapyService) ParentChildrenProgress(actor *models.Profile) ([]ChildSummary, error) {
	if actor == nil || actor.Role != models.RoleParent {
		return nil, ErrForbidden
	}

	children, err := s.linkRepo.GetChildrenForParent(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get linked children: %w", err)
	}

	var summaries []ChildSummary
	for _, child := range children {
		progress, err := s.ChildProgress(actor, child.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ChildSummary{Child: child, Progress: *progress})
	}
	return summaries, nil
}
