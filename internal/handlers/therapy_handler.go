package handlers

import (
	"net/http"
	"time"

	"chitraboard/internal/models"
	"chitraboard/internal/service"
)

// TherapyHandler serves published activities, assignments and progress
type TherapyHandler struct {
	therapyService *service.TherapyService
	emailService   *service.EmailService
}

// NewTherapyHandler creates a new therapy handler
func NewTherapyHandler(therapyService *service.TherapyService, emailService *service.EmailService) *TherapyHandler {
	return &TherapyHandler{
		therapyService: therapyService,
		emailService:   emailService,
	}
}

type activityRequest struct {
	Name    string                 `json:"name"`
	Type    string                 `json:"type"`
	Content models.MatchingContent `json:"content"`
}

// CreateActivity publishes a new activity
func (h *TherapyHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Type == "" {
		req.Type = string(models.ActivityMatching)
	}

	activity, err := h.therapyService.CreateActivity(GetProfileFromContext(r.Context()), req.Name, models.ActivityType(req.Type), req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// ListActivities lists the caller's authored activities
func (h *TherapyHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.therapyService.ListActivities(GetProfileFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// GetActivity returns one activity
func (h *TherapyHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := h.therapyService.GetActivity(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// UpdateActivity replaces an activity's name and content
func (h *TherapyHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	activity, err := h.therapyService.UpdateActivity(GetProfileFromContext(r.Context()), r.PathValue("id"), req.Name, req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// DeleteActivity removes an activity
func (h *TherapyHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	if err := h.therapyService.DeleteActivity(GetProfileFromContext(r.Context()), r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AssignableChildren lists children the activity can still be assigned
// to
func (h *TherapyHandler) AssignableChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.therapyService.AssignableChildren(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, children)
}

type assignRequest struct {
	ChildIDs []string   `json:"child_ids"`
	DueDate  *time.Time `json:"due_date,omitempty"`
}

// AssignActivity assigns an activity to one or more children
func (h *TherapyHandler) AssignActivity(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.ChildIDs) == 0 {
		respondError(w, http.StatusBadRequest, "child_ids is required")
		return
	}

	activityID := r.PathValue("id")
	result, err := h.therapyService.AssignActivity(GetProfileFromContext(r.Context()), activityID, req.ChildIDs, req.DueDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.therapyService.NotifyAssigned(r.Context(), h.emailService, activityID, result.Assigned)

	respondJSON(w, http.StatusOK, result)
}

// MyAssignments lists the signed-in child's assignments
func (h *TherapyHandler) MyAssignments(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	items, err := h.therapyService.ChildAssignments(profile, profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// ChildAssignments lists a child's assignments for a therapist or a
// linked parent
func (h *TherapyHandler) ChildAssignments(w http.ResponseWriter, r *http.Request) {
	items, err := h.therapyService.ChildAssignments(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// OpenAssignment marks an assignment in progress when the child opens
// it
func (h *TherapyHandler) OpenAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.therapyService.OpenAssignment(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assignment)
}

type submitRequest struct {
	Answers          map[string]string `json:"answers"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
}

// SubmitResponse grades and stores a play-through
func (h *TherapyHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	response, err := h.therapyService.SubmitResponse(GetProfileFromContext(r.Context()), r.PathValue("id"), req.Answers, req.TimeSpentSeconds)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, response)
}

type linkRequest struct {
	ParentID string `json:"parent_id"`
	ChildID  string `json:"child_id"`
}

// LinkParentToChild grants a parent visibility of a child
func (h *TherapyHandler) LinkParentToChild(w http.ResponseWriter, r *http.Request) {
	var req linkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	link, err := h.therapyService.LinkParentToChild(GetProfileFromContext(r.Context()), req.ParentID, req.ChildID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, link)
}

// MyProgress returns the signed-in child's aggregated progress
func (h *TherapyHandler) MyProgress(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())
	progress, err := h.therapyService.ChildProgress(profile, profile.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// ChildProgress returns one child's aggregated progress
func (h *TherapyHandler) ChildProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.therapyService.ChildProgress(GetProfileFromContext(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// ChildrenProgress returns progress summaries for every child the
// caller may see: assigned children for therapists, linked children
// for parents.
func (h *TherapyHandler) ChildrenProgress(w http.ResponseWriter, r *http.Request) {
	profile := GetProfileFromContext(r.Context())

	var summaries []service.ChildSummary
	var err error
	if profile.Role == models.RoleParent {
		summaries, err = h.therapyService.ParentChildrenProgress(profile)
	} else {
		summaries, err = h.therapyService.TherapistChildrenProgress(profile)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}
