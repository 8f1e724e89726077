// Package drafts is the local draft store: builder documents saved on
// the therapist's machine before (or instead of) publishing. Four
// independent collections live in one directory, each a single JSON
// list under its own well-known key. Last write wins; concurrent
// writers are not coordinated beyond a process-local lock.
package drafts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"chitraboard/internal/models"
)

// Well-known collection keys, kept from the original storage layout.
const (
	keyActivities = "therapy_activities"
	keyBoards     = "therapy_aac_boards"
	keySchedules  = "therapy_schedules"
	keyLanguage   = "therapy_language_settings"
)

// ErrNotFound is returned when no draft has the requested id.
var ErrNotFound = errors.New("draft not found")

// Store persists draft documents under a local directory.
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open prepares a draft store rooted at dir, creating it if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create draft dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// readList unmarshals the collection under key into out (a pointer to a
// slice). A missing file yields an empty collection.
func (s *Store) readList(key string, out interface{}) error {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (s *Store) writeList(key string, list interface{}) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// SaveBoard stores a board draft, replacing any draft with the same id.
func (s *Store) SaveBoard(board models.AACBoard) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var boards []models.AACBoard
	if err := s.readList(keyBoards, &boards); err != nil {
		return err
	}

	replaced := false
	for i := range boards {
		if boards[i].ID == board.ID {
			boards[i] = board
			replaced = true
			break
		}
	}
	if !replaced {
		boards = append(boards, board)
	}
	return s.writeList(keyBoards, boards)
}

// Boards lists all board drafts.
func (s *Store) Boards() ([]models.AACBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var boards []models.AACBoard
	if err := s.readList(keyBoards, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// BoardByID returns one board draft or ErrNotFound.
func (s *Store) BoardByID(id string) (models.AACBoard, error) {
	boards, err := s.Boards()
	if err != nil {
		return models.AACBoard{}, err
	}
	for _, b := range boards {
		if b.ID == id {
			return b, nil
		}
	}
	return models.AACBoard{}, ErrNotFound
}

// DeleteBoard removes a board draft; deleting an absent id is a no-op.
func (s *Store) DeleteBoard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var boards []models.AACBoard
	if err := s.readList(keyBoards, &boards); err != nil {
		return err
	}
	kept := boards[:0]
	for _, b := range boards {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	return s.writeList(keyBoards, kept)
}

// SaveSchedule stores a schedule draft, replacing by id.
func (s *Store) SaveSchedule(schedule models.VisualSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var schedules []models.VisualSchedule
	if err := s.readList(keySchedules, &schedules); err != nil {
		return err
	}

	replaced := false
	for i := range schedules {
		if schedules[i].ID == schedule.ID {
			schedules[i] = schedule
			replaced = true
			break
		}
	}
	if !replaced {
		schedules = append(schedules, schedule)
	}
	return s.writeList(keySchedules, schedules)
}

// Schedules lists all schedule drafts.
func (s *Store) Schedules() ([]models.VisualSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var schedules []models.VisualSchedule
	if err := s.readList(keySchedules, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// ScheduleByID returns one schedule draft or ErrNotFound.
func (s *Store) ScheduleByID(id string) (models.VisualSchedule, error) {
	schedules, err := s.Schedules()
	if err != nil {
		return models.VisualSchedule{}, err
	}
	for _, sch := range schedules {
		if sch.ID == id {
			return sch, nil
		}
	}
	return models.VisualSchedule{}, ErrNotFound
}

// DeleteSchedule removes a schedule draft; absent ids are a no-op.
func (s *Store) DeleteSchedule(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var schedules []models.VisualSchedule
	if err := s.readList(keySchedules, &schedules); err != nil {
		return err
	}
	kept := schedules[:0]
	for _, sch := range schedules {
		if sch.ID != id {
			kept = append(kept, sch)
		}
	}
	return s.writeList(keySchedules, kept)
}

// SaveActivity stores an activity draft, replacing by id.
func (s *Store) SaveActivity(activity models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []models.Activity
	if err := s.readList(keyActivities, &activities); err != nil {
		return err
	}

	replaced := false
	for i := range activities {
		if activities[i].ID == activity.ID {
			activities[i] = activity
			replaced = true
			break
		}
	}
	if !replaced {
		activities = append(activities, activity)
	}
	return s.writeList(keyActivities, activities)
}

// Activities lists all activity drafts.
func (s *Store) Activities() ([]models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []models.Activity
	if err := s.readList(keyActivities, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// ActivityByID returns one activity draft or ErrNotFound.
func (s *Store) ActivityByID(id string) (models.Activity, error) {
	activities, err := s.Activities()
	if err != nil {
		return models.Activity{}, err
	}
	for _, a := range activities {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Activity{}, ErrNotFound
}

// DeleteActivity removes an activity draft; absent ids are a no-op.
func (s *Store) DeleteActivity(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var activities []models.Activity
	if err := s.readList(keyActivities, &activities); err != nil {
		return err
	}
	kept := activities[:0]
	for _, a := range activities {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	return s.writeList(keyActivities, kept)
}

// SaveLanguageSettings stores the language preference document.
func (s *Store) SaveLanguageSettings(settings models.LanguageSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeList(keyLanguage, []models.LanguageSettings{settings})
}

// LanguageSettings returns the stored preferences, or English-only
// defaults when none were saved.
func (s *Store) LanguageSettings() (models.LanguageSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []models.LanguageSettings
	if err := s.readList(keyLanguage, &list); err != nil {
		return models.LanguageSettings{}, err
	}
	if len(list) == 0 {
		return models.LanguageSettings{English: true, RegionalLanguage: "tamil"}, nil
	}
	return list[0], nil
}

// ClearAll wipes every collection.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{keyActivities, keyBoards, keySchedules, keyLanguage} {
		if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}
