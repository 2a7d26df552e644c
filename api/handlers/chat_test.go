package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/databases/mocks"
	"github.com/pickupsports/game-chat-api/models"
)

// recordingPublisher captures fan-out calls for assertions
type recordingPublisher struct {
	destinations []string
	payloads     []interface{}
}

func (r *recordingPublisher) Publish(destination string, payload interface{}) {
	r.destinations = append(r.destinations, destination)
	r.payloads = append(r.payloads, payload)
}

func newChatHandler(messages *mocks.ChatMessageDatabase, games *mocks.GameDatabase, moderation *mocks.ModerationDatabase) (Chat, *recordingPublisher) {
	pub := &recordingPublisher{}
	return Chat{
		Service: &chat.Service{
			Messages:   messages,
			Games:      games,
			Moderation: moderation,
		},
		Publisher: pub,
		Games:     games,
	}, pub
}

func gameRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return mux.SetURLVars(r, map[string]string{"gameId": "42"})
}

// callerRequest builds a game request carrying the authenticated
// username the auth middleware would have attached
func callerRequest(method, target, body, caller string) *http.Request {
	r := gameRequest(method, target, body)
	return r.WithContext(api.WithCaller(r.Context(), caller))
}

func TestSubmitHandlerAcceptsAndFansOut(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	moderation := &mocks.ModerationDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	moderation.On("IsKicked", mock.Anything, int64(42), "alice").Return(false, nil)
	moderation.On("IsMuted", mock.Anything, int64(42), "alice").Return(false, nil)
	games.On("FindOne", mock.Anything, int64(42)).Return(&models.Game{ID: 42}, nil)
	messages.On("InsertOne", mock.Anything, mock.Anything).
		Return(&models.ChatMessage{MessageID: 1, GameID: 42, Sender: "alice", Content: "hi"}, nil)

	handler, pub := newChatHandler(messages, games, moderation)
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{"sender":"alice","content":"hi"}`, "alice"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"sender":"alice"`)
	assert.Equal(t, []string{"/topic/games/42/chat"}, pub.destinations)
}

func TestSubmitHandlerSenderComesFromCaller(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	moderation := &mocks.ModerationDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	moderation.On("IsKicked", mock.Anything, int64(42), "alice").Return(false, nil)
	moderation.On("IsMuted", mock.Anything, int64(42), "alice").Return(false, nil)
	games.On("FindOne", mock.Anything, int64(42)).Return(&models.Game{ID: 42}, nil)
	messages.On("InsertOne", mock.Anything, mock.MatchedBy(func(m models.ChatMessage) bool {
		return m.Sender == "alice"
	})).Return(&models.ChatMessage{MessageID: 1, GameID: 42, Sender: "alice", Content: "hi"}, nil)

	handler, _ := newChatHandler(messages, games, moderation)
	w := httptest.NewRecorder()
	// The body claims to be someone else; the stored sender is the
	// authenticated caller.
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{"sender":"mallory","content":"hi"}`, "alice"))

	assert.Equal(t, http.StatusCreated, w.Code)
	messages.AssertExpectations(t)
	moderation.AssertNotCalled(t, "IsKicked", mock.Anything, int64(42), "mallory")
}

func TestSubmitHandlerRejectsUnauthenticatedCaller(t *testing.T) {
	games := &mocks.GameDatabase{}
	handler, pub := newChatHandler(&mocks.ChatMessageDatabase{}, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, gameRequest(http.MethodPost, "/api/v1/games/42/chat", `{"sender":"alice","content":"hi"}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), chat.CodeUnauthenticated)
	assert.Empty(t, pub.destinations)
	games.AssertNotCalled(t, "IsParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitHandlerRejectsNonParticipant(t *testing.T) {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "mallory").Return(false, nil)
	moderation := &mocks.ModerationDatabase{}

	handler, pub := newChatHandler(&mocks.ChatMessageDatabase{}, games, moderation)
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{"content":"hi"}`, "mallory"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), chat.CodeForbidden)
	assert.Empty(t, pub.destinations)
	moderation.AssertNotCalled(t, "IsKicked", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitHandlerRejectsMutedSenderWithForbidden(t *testing.T) {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "mallory").Return(true, nil)
	moderation := &mocks.ModerationDatabase{}
	moderation.On("IsKicked", mock.Anything, int64(42), "mallory").Return(false, nil)
	moderation.On("IsMuted", mock.Anything, int64(42), "mallory").Return(true, nil)

	handler, pub := newChatHandler(&mocks.ChatMessageDatabase{}, games, moderation)
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{"sender":"mallory","content":"hi"}`, "mallory"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), chat.CodeForbidden)
	assert.Empty(t, pub.destinations)
}

func TestSubmitHandlerRejectsMalformedBody(t *testing.T) {
	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{not json`, "alice"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitHandlerRejectsInvalidGameID(t *testing.T) {
	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/games/abc/chat", strings.NewReader(`{}`))
	r = mux.SetURLVars(r, map[string]string{"gameId": "abc"})
	handler.SubmitHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitHandlerInfrastructureErrorIsInternal(t *testing.T) {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	moderation := &mocks.ModerationDatabase{}
	moderation.On("IsKicked", mock.Anything, int64(42), "alice").Return(false, assert.AnError)

	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, games, moderation)
	w := httptest.NewRecorder()
	handler.SubmitHandler(w, callerRequest(http.MethodPost, "/api/v1/games/42/chat", `{"sender":"alice","content":"hi"}`, "alice"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHistoryHandlerRejectsNonParticipant(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "bob").Return(false, nil)

	handler, _ := newChatHandler(messages, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.HistoryHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/history", "", "bob"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), chat.CodeForbidden)
	messages.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryHandlerRejectsUnauthenticatedCaller(t *testing.T) {
	games := &mocks.GameDatabase{}
	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.HistoryHandler(w, gameRequest(http.MethodGet, "/api/v1/games/42/chat/history", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	games.AssertNotCalled(t, "IsParticipant", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryHandlerRejectsUnknownGame(t *testing.T) {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	games.On("FindOne", mock.Anything, int64(42)).Return(nil, mongo.ErrNoDocuments)

	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.HistoryHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/history", "", "alice"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "game not found")
}

func TestHistoryHandlerRejectsBadTimestamp(t *testing.T) {
	handler, _ := newChatHandler(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.HistoryHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/history?before=yesterday", "", "alice"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLatestHandlerReturnsOldestFirst(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	messages.On("Latest", mock.Anything, int64(42), 2).Return([]models.ChatMessage{
		{MessageID: 2, Content: "second"},
		{MessageID: 1, Content: "first"},
	}, nil)

	handler, _ := newChatHandler(messages, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.LatestHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/latest?limit=2", "", "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "first"), strings.Index(body, "second"))
}

func TestLatestHandlerRejectsNonParticipant(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "bob").Return(false, nil)

	handler, _ := newChatHandler(messages, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.LatestHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/latest", "", "bob"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	messages.AssertNotCalled(t, "Latest", mock.Anything, mock.Anything, mock.Anything)
}

func TestSinceHandlerEmptyResultIsEmptyArray(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "alice").Return(true, nil)
	messages.On("Since", mock.Anything, int64(42), mock.Anything, 100).Return(nil, nil)

	handler, _ := newChatHandler(messages, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.SinceHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/since", "", "alice"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestSinceHandlerRejectsNonParticipant(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "bob").Return(false, nil)

	handler, _ := newChatHandler(messages, games, &mocks.ModerationDatabase{})
	w := httptest.NewRecorder()
	handler.SinceHandler(w, callerRequest(http.MethodGet, "/api/v1/games/42/chat/since", "", "bob"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	messages.AssertNotCalled(t, "Since", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
