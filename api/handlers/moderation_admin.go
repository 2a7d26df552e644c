package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/config"
	"github.com/pickupsports/game-chat-api/databases"
	"github.com/pickupsports/game-chat-api/models"
)

// ModerationAdmin exposes the per-game muted and kicked sets
type ModerationAdmin struct {
	DB databases.ModerationDatabase
}

// GetHandler returns the moderation sets for a game
func (ma ModerationAdmin) GetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	mod, err := ma.DB.FindOne(ctx, gameID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			writeJSON(w, http.StatusOK, models.GameModeration{GameID: gameID, Muted: []string{}, Kicked: []string{}})
			return
		}
		config.ErrorStatus("failed to get moderation sets", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, mod)
}

// MuteHandler adds a user to the game's muted set
func (ma ModerationAdmin) MuteHandler(w http.ResponseWriter, r *http.Request) {
	ma.update(w, r, databases.ModerationDatabase.Mute)
}

// KickHandler adds a user to the game's kicked set
func (ma ModerationAdmin) KickHandler(w http.ResponseWriter, r *http.Request) {
	ma.update(w, r, databases.ModerationDatabase.Kick)
}

// UnmuteHandler removes a user from the game's muted set
func (ma ModerationAdmin) UnmuteHandler(w http.ResponseWriter, r *http.Request) {
	ma.remove(w, r, databases.ModerationDatabase.Unmute)
}

// UnkickHandler removes a user from the game's kicked set
func (ma ModerationAdmin) UnkickHandler(w http.ResponseWriter, r *http.Request) {
	ma.remove(w, r, databases.ModerationDatabase.Unkick)
}

func (ma ModerationAdmin) update(w http.ResponseWriter, r *http.Request, op func(databases.ModerationDatabase, context.Context, int64, string) error) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	var req models.ModerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		config.ErrorStatus("username required", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := op(ma.DB, ctx, gameID, req.Username); err != nil {
		config.ErrorStatus("failed to update moderation sets", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (ma ModerationAdmin) remove(w http.ResponseWriter, r *http.Request, op func(databases.ModerationDatabase, context.Context, int64, string) error) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	username := mux.Vars(r)["username"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := op(ma.DB, ctx, gameID, username); err != nil {
		config.ErrorStatus("failed to update moderation sets", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
