package handlers

import (
	"net/http"

	"chitraboard/internal/models"
	"chitraboard/internal/speech"
	"chitraboard/internal/symbols"
)

// SymbolsHandler serves the fixed symbol library and the speech
// endpoints built on it
type SymbolsHandler struct {
	speaker *speech.Speaker
}

// NewSymbolsHandler creates a new symbols handler
func NewSymbolsHandler(speaker *speech.Speaker) *SymbolsHandler {
	return &SymbolsHandler{speaker: speaker}
}

// ListSymbols lists library symbols, optionally filtered:
// ?q=<search>&category=<category>
func (h *SymbolsHandler) ListSymbols(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	var result []models.Symbol
	if query != "" {
		result = symbols.Search(query)
	} else {
		result = symbols.All()
	}

	if category != "" {
		filtered := result[:0]
		for _, s := range result {
			if s.Category == models.Category(category) {
				filtered = append(filtered, s)
			}
		}
		result = filtered
	}

	respondJSON(w, http.StatusOK, result)
}

// GetSymbol returns one symbol by id
func (h *SymbolsHandler) GetSymbol(w http.ResponseWriter, r *http.Request) {
	symbol, err := symbols.ByID(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Symbol not found")
		return
	}
	respondJSON(w, http.StatusOK, symbol)
}

// ListCategories lists the library categories in display order
func (h *SymbolsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, symbols.Categories())
}

type speakRequest struct {
	Text             string `json:"text"`
	Language         string `json:"language"`
	RegionalLanguage string `json:"regional_language"`
}

// Speak synthesizes speech for a cell tap and returns the audio file
// path. A new tap cancels any synthesis still in flight.
func (h *SymbolsHandler) Speak(w http.ResponseWriter, r *http.Request) {
	var req speakRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Language == "" {
		req.Language = string(models.LanguageEnglish)
	}

	filename, err := h.speaker.Speak(r.Context(), req.Text, models.Language(req.Language), req.RegionalLanguage)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Speech synthesis failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"audio_url": "/static/audio/" + filename})
}

// StopSpeech cancels any in-flight speech synthesis
func (h *SymbolsHandler) StopSpeech(w http.ResponseWriter, r *http.Request) {
	h.speaker.Stop()
	respondJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}
