package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/config"
	"github.com/pickupsports/game-chat-api/models"
	"github.com/pickupsports/game-chat-api/realtime"
)

// ReadStatus exposes per-user read cursors over REST. A cursor belongs
// to the authenticated caller: the username in the path must match the
// caller, and the caller must be a participant of the game.
type ReadStatus struct {
	Cursors *chat.CursorService
	Games   realtime.MembershipOracle
}

// requireCursorOwner enforces that the caller addresses their own
// cursor within a game they participate in
func (rs ReadStatus) requireCursorOwner(ctx context.Context, r *http.Request, gameID int64) (string, error) {
	caller, err := requireParticipant(ctx, r, rs.Games, gameID)
	if err != nil {
		return "", err
	}
	if username := mux.Vars(r)["username"]; username != caller {
		return "", chat.Forbidden("read cursors belong to their owner")
	}
	return caller, nil
}

// GetHandler returns the stored cursor or the never-read default
func (rs ReadStatus) GetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	username, err := rs.requireCursorOwner(ctx, r, gameID)
	if err != nil {
		writeChatError(w, "read cursor refused", err)
		return
	}
	cursor, err := rs.Cursors.Get(ctx, username, gameID)
	if err != nil {
		config.ErrorStatus("failed to get read cursor", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

// UpdateHandler advances the cursor; lastReadAt never moves backwards
func (rs ReadStatus) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	var req models.UpdateReadCursorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	username, err := rs.requireCursorOwner(ctx, r, gameID)
	if err != nil {
		writeChatError(w, "read cursor update refused", err)
		return
	}
	cursor, err := rs.Cursors.Update(ctx, username, gameID, req)
	if err != nil {
		writeChatError(w, "failed to update read cursor", err)
		return
	}
	writeJSON(w, http.StatusOK, cursor)
}

// UnreadCountHandler counts messages after the cursor's lastReadAt
func (rs ReadStatus) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	username, err := rs.requireCursorOwner(ctx, r, gameID)
	if err != nil {
		writeChatError(w, "unread count refused", err)
		return
	}
	unread, err := rs.Cursors.UnreadCount(ctx, username, gameID)
	if err != nil {
		config.ErrorStatus("failed to count unread messages", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.UnreadCountResponse{GameID: gameID, Unread: unread})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(status)
	w.Write(b)
}
