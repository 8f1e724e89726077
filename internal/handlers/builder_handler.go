package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chitraboard/internal/builder"
	"chitraboard/internal/drafts"
	"chitraboard/internal/models"
	"chitraboard/internal/service"
)

// BuilderHandler serves the builder draft store: boards, schedules and
// activity drafts saved locally before publishing.
type BuilderHandler struct {
	store          *drafts.Store
	therapyService *service.TherapyService
}

// NewBuilderHandler creates a new builder handler
func NewBuilderHandler(store *drafts.Store, therapyService *service.TherapyService) *BuilderHandler {
	return &BuilderHandler{
		store:          store,
		therapyService: therapyService,
	}
}

// ListBoards lists all board drafts
func (h *BuilderHandler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.store.Boards()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boards)
}

// GetBoard returns one board draft
func (h *BuilderHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.store.BoardByID(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, board)
}

// SaveBoard validates and stores a board draft, replacing any draft
// with the same id. A missing id means a new draft.
func (h *BuilderHandler) SaveBoard(w http.ResponseWriter, r *http.Request) {
	var board models.AACBoard
	if !decodeJSON(w, r, &board) {
		return
	}
	if board.ID == "" {
		board.ID = uuid.NewString()
	}

	finalized, err := builder.EditBoard(board).Finalize(time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := h.store.SaveBoard(finalized); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, finalized)
}

// DeleteBoard removes a board draft
func (h *BuilderHandler) DeleteBoard(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteBoard(r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListSchedules lists all schedule drafts
func (h *BuilderHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.store.Schedules()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedules)
}

// GetSchedule returns one schedule draft
func (h *BuilderHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.store.ScheduleByID(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, schedule)
}

// SaveSchedule validates and stores a schedule draft
func (h *BuilderHandler) SaveSchedule(w http.ResponseWriter, r *http.Request) {
	var schedule models.VisualSchedule
	if !decodeJSON(w, r, &schedule) {
		return
	}
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}

	finalized, err := builder.EditSchedule(schedule).Finalize(time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := h.store.SaveSchedule(finalized); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, finalized)
}

// DeleteSchedule removes a schedule draft
func (h *BuilderHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSchedule(r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListActivityDrafts lists all activity drafts
func (h *BuilderHandler) ListActivityDrafts(w http.ResponseWriter, r *http.Request) {
	activities, err := h.store.Activities()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// GetActivityDraft returns one activity draft
func (h *BuilderHandler) GetActivityDraft(w http.ResponseWriter, r *http.Request) {
	activity, err := h.store.ActivityByID(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// SaveActivityDraft validates and stores an activity draft
func (h *BuilderHandler) SaveActivityDraft(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if !decodeJSON(w, r, &activity) {
		return
	}
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.Type == "" {
		activity.Type = models.ActivityMatching
	}
	activity.TherapistID = GetProfileFromContext(r.Context()).ID

	finalized, err := builder.EditMatching(activity).Finalize(time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if err := h.store.SaveActivity(finalized); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, finalized)
}

// DeleteActivityDraft removes an activity draft
func (h *BuilderHandler) DeleteActivityDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteActivity(r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// PublishActivityDraft publishes an activity draft as an assignable
// activity. The draft stays in the store; publishing again creates a
// separate activity.
func (h *BuilderHandler) PublishActivityDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.store.ActivityByID(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, drafts.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Not found")
			return
		}
		respondServiceError(w, err)
		return
	}

	activity, err := h.therapyService.CreateActivity(GetProfileFromContext(r.Context()), draft.Name, draft.Type, draft.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, activity)
}

// GetLanguageSettings returns the saved language preferences
func (h *BuilderHandler) GetLanguageSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.LanguageSettings()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}

// SaveLanguageSettings replaces the saved language preferences
func (h *BuilderHandler) SaveLanguageSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.LanguageSettings
	if !decodeJSON(w, r, &settings) {
		return
	}
	if err := h.store.SaveLanguageSettings(settings); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settings)
}
