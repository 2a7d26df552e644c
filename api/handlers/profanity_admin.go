package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/config"
)

// ProfanityAdmin exposes runtime mutation of the profanity dictionary
type ProfanityAdmin struct {
	Filter *chat.ProfanityFilter
}

type profanityWordRequest struct {
	Word string `json:"word"`
}

type profanityWordsRequest struct {
	Words []string `json:"words"`
}

type profanitySettingsRequest struct {
	Enabled *bool `json:"enabled,omitempty"`
	Reject  *bool `json:"reject,omitempty"`
}

// ListWordsHandler returns the dictionary terms sorted
func (pa ProfanityAdmin) ListWordsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, map[string][]string{"words": pa.Filter.Words()})
}

// AddWordHandler inserts one term into the dictionary
func (pa ProfanityAdmin) AddWordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req profanityWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Word == "" {
		config.ErrorStatus("word required", http.StatusBadRequest, w, err)
		return
	}
	pa.Filter.Add(req.Word)
	writeJSON(w, http.StatusOK, map[string][]string{"words": pa.Filter.Words()})
}

// RemoveWordHandler deletes one term from the dictionary
func (pa ProfanityAdmin) RemoveWordHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pa.Filter.Remove(mux.Vars(r)["word"])
	writeJSON(w, http.StatusOK, map[string][]string{"words": pa.Filter.Words()})
}

// ReplaceWordsHandler swaps the entire dictionary
func (pa ProfanityAdmin) ReplaceWordsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req profanityWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	pa.Filter.ReplaceAll(req.Words)
	writeJSON(w, http.StatusOK, map[string][]string{"words": pa.Filter.Words()})
}

// ReloadHandler rebuilds the dictionary from config and file
func (pa ProfanityAdmin) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pa.Filter.Reload()
	writeJSON(w, http.StatusOK, map[string][]string{"words": pa.Filter.Words()})
}

// UpdateSettingsHandler toggles the enabled and reject flags
func (pa ProfanityAdmin) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req profanitySettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.Enabled != nil {
		pa.Filter.SetEnabled(*req.Enabled)
	}
	if req.Reject != nil {
		pa.Filter.SetReject(*req.Reject)
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"enabled": pa.Filter.Enabled(),
		"reject":  pa.Filter.ShouldReject(),
	})
}
