package handlers

import (
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"chitraboard/internal/drafts"
	"chitraboard/internal/service"
)

// ShareHandler mints and resolves share links for boards and schedules
type ShareHandler struct {
	shareService *service.ShareService
	store        *drafts.Store
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService *service.ShareService, store *drafts.Store) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		store:        store,
	}
}

type shareRequest struct {
	Kind       string `json:"kind"`
	DocumentID string `json:"document_id"`
}

type shareResponse struct {
	Token  string `json:"token"`
	URL    string `json:"url"`
	QRCode string `json:"qr_code"`
}

// CreateShareLink mints a signed link for a board or schedule draft.
// The document must exist at mint time; the link itself stays valid
// until it expires, whatever happens to the draft.
func (h *ShareHandler) CreateShareLink(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Kind {
	case service.ShareKindBoard:
		if _, err := h.store.BoardByID(req.DocumentID); err != nil {
			respondServiceError(w, err)
			return
		}
	case service.ShareKindSchedule:
		if _, err := h.store.ScheduleByID(req.DocumentID); err != nil {
			respondServiceError(w, err)
			return
		}
	default:
		respondError(w, http.StatusBadRequest, "kind must be board or schedule")
		return
	}

	token, err := h.shareService.CreateToken(req.Kind, req.DocumentID, GetProfileFromContext(r.Context()).ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, shareResponse{
		Token:  token,
		URL:    h.shareService.ShareURL(token),
		QRCode: "/api/share/" + token + "/qr.png",
	})
}

// ResolveShareLink returns the shared document for a valid token. No
// session required: share links are the hand-to-a-parent path.
func (h *ShareHandler) ResolveShareLink(w http.ResponseWriter, r *http.Request) {
	claims, err := h.shareService.VerifyToken(r.PathValue("token"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	switch claims.Kind {
	case service.ShareKindBoard:
		board, err := h.store.BoardByID(claims.DocumentID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"kind": claims.Kind, "board": board})
	case service.ShareKindSchedule:
		schedule, err := h.store.ScheduleByID(claims.DocumentID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"kind": claims.Kind, "schedule": schedule})
	default:
		respondError(w, http.StatusBadRequest, "Invalid share link")
	}
}

// ShareQRCode renders the share URL as a QR code PNG
func (h *ShareHandler) ShareQRCode(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if _, err := h.shareService.VerifyToken(token); err != nil {
		respondServiceError(w, err)
		return
	}

	png, err := qrcode.Encode(h.shareService.ShareURL(token), qrcode.Medium, 256)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
