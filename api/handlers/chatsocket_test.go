package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/databases/mocks"
	"github.com/pickupsports/game-chat-api/models"
	"github.com/pickupsports/game-chat-api/realtime"
)

const socketTestSecret = "socket-test-secret"

func socketToken(t *testing.T, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(socketTestSecret))
	require.NoError(t, err)
	return signed
}

func newSocketServer(messages *mocks.ChatMessageDatabase, games *mocks.GameDatabase, moderation *mocks.ModerationDatabase) *httptest.Server {
	hub := realtime.NewHub()
	cs := ChatSocket{
		Hub: hub,
		Auth: &realtime.ConnectionAuthenticator{
			Secret:       []byte(socketTestSecret),
			HeaderName:   "Authorization",
			HeaderPrefix: "Bearer ",
		},
		Authorizer: &realtime.DestinationAuthorizer{Games: games},
		Service: &chat.Service{
			Messages:   messages,
			Games:      games,
			Moderation: moderation,
		},
		Publisher: &realtime.LocalPublisher{Hub: hub},
	}
	return httptest.NewServer(http.HandlerFunc(cs.HandleChatWebSocket))
}

func dialSocket(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) realtime.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame realtime.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func connect(t *testing.T, conn *websocket.Conn, username string) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(realtime.Frame{
		Type:    realtime.FrameConnect,
		Headers: map[string]string{"Authorization": "Bearer " + socketToken(t, username)},
	}))
	frame := readFrame(t, conn)
	require.Equal(t, realtime.FrameConnected, frame.Type)
	require.Equal(t, username, frame.Headers["user"])
}

func TestWebSocketConnectRejectsBadToken(t *testing.T) {
	srv := newSocketServer(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(realtime.Frame{
		Type:    realtime.FrameConnect,
		Headers: map[string]string{"Authorization": "Bearer not-a-token"},
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, realtime.FrameError, frame.Type)
	assert.Equal(t, chat.CodeUnauthenticated, frame.Headers["code"])

	// A failed CONNECT closes the session.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}

func TestWebSocketSendBeforeConnectIsRejected(t *testing.T) {
	srv := newSocketServer(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(realtime.Frame{
		Type:        realtime.FrameSend,
		Destination: "/app/games/42/chat",
		Body:        json.RawMessage(`{"content":"hi"}`),
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, realtime.FrameError, frame.Type)
	assert.Equal(t, chat.CodeUnauthenticated, frame.Headers["code"])
}

func TestWebSocketSendDeliversToSubscribers(t *testing.T) {
	messages := &mocks.ChatMessageDatabase{}
	games := &mocks.GameDatabase{}
	moderation := &mocks.ModerationDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), mock.Anything).Return(true, nil)
	games.On("FindOne", mock.Anything, int64(42)).Return(&models.Game{ID: 42}, nil)
	moderation.On("IsKicked", mock.Anything, int64(42), "alice").Return(false, nil)
	moderation.On("IsMuted", mock.Anything, int64(42), "alice").Return(false, nil)
	messages.On("InsertOne", mock.Anything, mock.Anything).
		Return(&models.ChatMessage{MessageID: 1, GameID: 42, Sender: "alice", Content: "hi"}, nil)

	srv := newSocketServer(messages, games, moderation)
	defer srv.Close()

	listener := dialSocket(t, srv)
	defer listener.Close()
	connect(t, listener, "bob")
	require.NoError(t, listener.WriteJSON(realtime.Frame{
		Type:        realtime.FrameSubscribe,
		Destination: "/topic/games/42/chat",
	}))

	sender := dialSocket(t, srv)
	defer sender.Close()
	connect(t, sender, "alice")

	// Subscription registration races the send; give it a moment.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, sender.WriteJSON(realtime.Frame{
		Type:        realtime.FrameSend,
		Destination: "/app/games/42/chat",
		Body:        json.RawMessage(`{"content":"hi"}`),
	}))

	frame := readFrame(t, listener)
	assert.Equal(t, realtime.FrameMessage, frame.Type)
	assert.Equal(t, "/topic/games/42/chat", frame.Destination)

	var msg models.ChatMessage
	require.NoError(t, json.Unmarshal(frame.Body, &msg))
	// The session identity is the sender, whatever the body said.
	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "hi", msg.Content)
}

func TestWebSocketSendByNonParticipantIsForbidden(t *testing.T) {
	games := &mocks.GameDatabase{}
	games.On("IsParticipant", mock.Anything, int64(42), "mallory").Return(false, nil)

	srv := newSocketServer(&mocks.ChatMessageDatabase{}, games, &mocks.ModerationDatabase{})
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()
	connect(t, conn, "mallory")

	require.NoError(t, conn.WriteJSON(realtime.Frame{
		Type:        realtime.FrameSend,
		Destination: "/app/games/42/chat",
		Body:        json.RawMessage(`{"content":"hi"}`),
	}))

	frame := readFrame(t, conn)
	assert.Equal(t, realtime.FrameError, frame.Type)
	assert.Equal(t, chat.CodeForbidden, frame.Headers["code"])
}

func TestWebSocketUnknownFrameType(t *testing.T) {
	srv := newSocketServer(&mocks.ChatMessageDatabase{}, &mocks.GameDatabase{}, &mocks.ModerationDatabase{})
	defer srv.Close()

	conn := dialSocket(t, srv)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(realtime.Frame{Type: "DANCE"}))

	frame := readFrame(t, conn)
	assert.Equal(t, realtime.FrameError, frame.Type)
	assert.Equal(t, chat.CodeBadRequest, frame.Headers["code"])
}
