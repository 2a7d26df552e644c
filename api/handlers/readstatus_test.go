package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/databases/mocks"
	"github.com/pickupsports/game-chat-api/models"
)

func readStatusRequest(method, target, body, caller string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	r = mux.SetURLVars(r, map[string]string{"gameId": "42", "username": "alice"})
	if caller != "" {
		r = r.WithContext(api.WithCaller(r.Context(), caller))
	}
	return r
}

// participantGames answers membership for the cursor's owner
func participantGames(username string, member bool) *mocks.GameDatabase {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), username).Return(member, nil)
	return games
}

func TestGetHandlerReturnsDefaultWhenNeverRead(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	cursors.On("FindOne", mock.Anything, "alice", int64(42)).Return(nil, mongo.ErrNoDocuments)

	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("alice", true)}
	w := httptest.NewRecorder()
	handler.GetHandler(w, readStatusRequest(http.MethodGet, "/api/v1/games/42/chat/read-status/alice", "", "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user":"alice"`)
	assert.Contains(t, w.Body.String(), `"lastReadAt":"1970-01-01T00:00:00Z"`)
}

func TestGetHandlerRejectsNonParticipant(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("alice", false)}
	w := httptest.NewRecorder()
	handler.GetHandler(w, readStatusRequest(http.MethodGet, "/api/v1/games/42/chat/read-status/alice", "", "alice"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	cursors.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetHandlerRejectsForeignCursor(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("bob", true)}
	w := httptest.NewRecorder()
	// bob addresses alice's cursor
	handler.GetHandler(w, readStatusRequest(http.MethodGet, "/api/v1/games/42/chat/read-status/alice", "", "bob"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	cursors.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetHandlerRejectsUnauthenticatedCaller(t *testing.T) {
	games := &mocks.GameDatabase{}
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: &mocks.ReadCursorDatabase{}}, Games: games}
	w := httptest.NewRecorder()
	handler.GetHandler(w, readStatusRequest(http.MethodGet, "/api/v1/games/42/chat/read-status/alice", "", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	games.AssertNotCalled(t, "IsParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateHandlerAdvancesCursor(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	at, _ := time.Parse(time.RFC3339, "2026-08-30T12:00:00Z")
	cursors.On("Advance", mock.Anything, "alice", int64(42), at, (*int64)(nil)).
		Return(&models.ReadCursor{User: "alice", GameID: 42, LastReadAt: at}, nil)

	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("alice", true)}
	w := httptest.NewRecorder()
	handler.UpdateHandler(w, readStatusRequest(http.MethodPut,
		"/api/v1/games/42/chat/read-status/alice",
		`{"lastReadAt":"2026-08-30T12:00:00Z"}`, "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"lastReadAt":"2026-08-30T12:00:00Z"`)
}

func TestUpdateHandlerRequiresLastReadAt(t *testing.T) {
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: &mocks.ReadCursorDatabase{}}, Games: participantGames("alice", true)}
	w := httptest.NewRecorder()
	handler.UpdateHandler(w, readStatusRequest(http.MethodPut,
		"/api/v1/games/42/chat/read-status/alice", `{}`, "alice"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), chat.CodeBadRequest)
}

func TestUpdateHandlerRejectsForeignCursor(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("bob", true)}
	w := httptest.NewRecorder()
	handler.UpdateHandler(w, readStatusRequest(http.MethodPut,
		"/api/v1/games/42/chat/read-status/alice",
		`{"lastReadAt":"2026-08-30T12:00:00Z"}`, "bob"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	cursors.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUnreadCountHandler(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	messages := &mocks.ChatMessageDatabase{}
	at := time.Now().UTC().Add(-time.Hour)
	cursors.On("FindOne", mock.Anything, "alice", int64(42)).
		Return(&models.ReadCursor{User: "alice", GameID: 42, LastReadAt: at}, nil)
	messages.On("CountAfter", mock.Anything, int64(42), at).Return(int64(3), nil)

	handler := ReadStatus{
		Cursors: &chat.CursorService{Cursors: cursors, Messages: messages},
		Games:   participantGames("alice", true),
	}
	w := httptest.NewRecorder()
	handler.UnreadCountHandler(w, readStatusRequest(http.MethodGet,
		"/api/v1/games/42/chat/unread-count/alice", "", "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"gameId":42,"unread":3}`, w.Body.String())
}

func TestUnreadCountHandlerRejectsNonParticipant(t *testing.T) {
	cursors := &mocks.ReadCursorDatabase{}
	handler := ReadStatus{Cursors: &chat.CursorService{Cursors: cursors}, Games: participantGames("alice", false)}
	w := httptest.NewRecorder()
	handler.UnreadCountHandler(w, readStatusRequest(http.MethodGet,
		"/api/v1/games/42/chat/unread-count/alice", "", "alice"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	cursors.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything, mock.Anything)
}
