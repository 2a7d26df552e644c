package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/config"
	"github.com/pickupsports/game-chat-api/models"
	"github.com/pickupsports/game-chat-api/realtime"
)

// Chat exposes the chat submission pipeline and read queries over REST.
// Every route requires the authenticated caller to be a participant of
// the addressed game, mirroring the websocket authorizer.
type Chat struct {
	Service   *chat.Service
	Publisher realtime.Publisher
	Games     realtime.MembershipOracle
}

// requireParticipant resolves the bearer-authenticated caller and
// checks game membership before any read or write touches the room
func requireParticipant(ctx context.Context, r *http.Request, games realtime.MembershipOracle, gameID int64) (string, error) {
	caller := api.Caller(r.Context())
	if caller == "" {
		return "", chat.Unauthenticated("authentication required")
	}
	member, err := games.IsParticipant(ctx, gameID, caller)
	if err != nil {
		return "", err
	}
	if !member {
		return "", chat.Forbidden(fmt.Sprintf("not a participant of game %d", gameID))
	}
	return caller, nil
}

// SubmitHandler runs one submission through the pipeline and fans the
// accepted row out to the game's topic
func (c Chat) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}

	var sub models.ChatSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	caller, err := requireParticipant(ctx, r, c.Games, gameID)
	if err != nil {
		writeChatError(w, "chat submission refused", err)
		return
	}
	// The authenticated caller is authoritative for who is speaking.
	sub.Sender = caller

	msg, err := c.Service.Record(ctx, gameID, sub)
	if err != nil {
		writeChatError(w, "failed to record chat message", err)
		return
	}

	c.Publisher.Publish(fmt.Sprintf("/topic/games/%d/chat", gameID), msg)

	b, err := json.Marshal(msg)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// HistoryHandler returns messages at or before the cutoff, newest first
func (c Chat) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	before, err := timeQuery(r, "before")
	if err != nil {
		config.ErrorStatus("invalid before timestamp", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, err := requireParticipant(ctx, r, c.Games, gameID); err != nil {
		writeChatError(w, "chat history refused", err)
		return
	}
	messages, err := c.Service.History(ctx, gameID, before, intQuery(r, "limit"))
	if err != nil {
		writeChatError(w, "failed to get chat history", err)
		return
	}
	writeMessages(w, messages)
}

// LatestHandler returns the newest messages reordered oldest first
func (c Chat) LatestHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, err := requireParticipant(ctx, r, c.Games, gameID); err != nil {
		writeChatError(w, "latest chat messages refused", err)
		return
	}
	messages, err := c.Service.Latest(ctx, gameID, intQuery(r, "limit"))
	if err != nil {
		writeChatError(w, "failed to get latest chat messages", err)
		return
	}
	writeMessages(w, messages)
}

// SinceHandler returns messages strictly after the cutoff, oldest first
func (c Chat) SinceHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	gameID, err := gameIDFromRequest(r)
	if err != nil {
		config.ErrorStatus("invalid gameId", http.StatusBadRequest, w, err)
		return
	}
	after, err := timeQuery(r, "after")
	if err != nil {
		config.ErrorStatus("invalid after timestamp", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if _, err := requireParticipant(ctx, r, c.Games, gameID); err != nil {
		writeChatError(w, "chat messages refused", err)
		return
	}
	messages, err := c.Service.Since(ctx, gameID, after, intQuery(r, "limit"))
	if err != nil {
		writeChatError(w, "failed to get chat messages", err)
		return
	}
	writeMessages(w, messages)
}

// ---------- helpers shared by the chat handlers ----------

func gameIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["gameId"], 10, 64)
}

func intQuery(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

func timeQuery(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func writeMessages(w http.ResponseWriter, messages []models.ChatMessage) {
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	b, err := json.Marshal(messages)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// writeChatError maps pipeline rejections to their category status and
// everything else to a 500
func writeChatError(w http.ResponseWriter, message string, err error) {
	code := chat.CodeOf(err)
	if code == "" {
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
		return
	}
	b, _ := json.Marshal(models.ChatErrorResponse{Error: err.Error(), Code: code})
	w.WriteHeader(chat.StatusOf(err))
	w.Write(b)
}
