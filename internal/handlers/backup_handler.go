package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"chitraboard/internal/service"
)

// BackupHandler exposes database export and import to admins
type BackupHandler struct {
	backupService *service.BackupService
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService *service.BackupService) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Export streams a full JSON backup as a download
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("chitraboard-backup-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := h.backupService.ExportToWriter(w); err != nil {
		// Headers are already out; all we can do is log
		log.Printf("Backup export failed: %v", err)
	}
}

// Import restores a backup uploaded in the request body. Imports
// expect an empty database; rows that collide with existing ids fail
// the import.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := h.backupService.ImportFromReader(r.Body); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Import failed: %v", err))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
