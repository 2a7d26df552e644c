package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/api"
	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/models"
	"github.com/pickupsports/game-chat-api/realtime"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust CORS as needed, e.g., check r.Header.Get("Origin")
	},
}

// ChatSocket serves the chat websocket endpoint. The frame pipeline
// mirrors the REST one: authenticate at CONNECT, authorize every
// SEND/SUBSCRIBE destination, run SENDs through the submission
// pipeline, then fan out.
type ChatSocket struct {
	Hub        *realtime.Hub
	Auth       *realtime.ConnectionAuthenticator
	Authorizer *realtime.DestinationAuthorizer
	Service    *chat.Service
	Publisher  realtime.Publisher
}

// HandleChatWebSocket upgrades the connection and processes frames
// until the client goes away
func (cs ChatSocket) HandleChatWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Warnw("websocket upgrade failed", "error", err)
		return
	}

	session := cs.Hub.Register(conn)
	defer cs.Hub.Unregister(session)

	// CONNECT frames may omit headers and rely on the ones sent with
	// the upgrade request.
	upgradeHeaders := make(map[string]string, len(r.Header))
	for k := range r.Header {
		upgradeHeaders[k] = r.Header.Get(k)
	}

	for {
		var frame realtime.Frame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.S().Debugw("chat session read error",
					"session", session.ID,
					"error", err,
				)
			}
			return
		}

		switch frame.Type {
		case realtime.FrameConnect:
			if !cs.handleConnect(session, frame, upgradeHeaders) {
				return
			}
		case realtime.FrameSend:
			cs.handleSend(r, session, frame)
		case realtime.FrameSubscribe:
			cs.handleSubscribe(r, session, frame)
		case realtime.FrameUnsubscribe:
			if session.Identity() == nil {
				session.SendError(chat.CodeUnauthenticated, "not connected")
				continue
			}
			cs.Hub.Unsubscribe(session, frame.Destination)
		default:
			session.SendError(chat.CodeBadRequest, "unknown frame type")
		}
	}
}

// handleConnect authenticates and attaches the identity. A failed
// CONNECT terminates the connection attempt; nothing is attached.
func (cs ChatSocket) handleConnect(session *realtime.Session, frame realtime.Frame, upgradeHeaders map[string]string) bool {
	headers := frame.Headers
	if len(headers) == 0 {
		headers = upgradeHeaders
	}
	identity, err := cs.Auth.Authenticate(headers)
	if err != nil {
		session.SendError(chat.CodeUnauthenticated, err.Error())
		return false
	}
	session.SetIdentity(identity)
	err = session.Send(realtime.Frame{
		Type:    realtime.FrameConnected,
		Headers: map[string]string{"user": identity.Username},
	})
	if err != nil {
		return false
	}
	zap.S().Debugw("chat session connected",
		"session", session.ID,
		"user", identity.Username,
	)
	return true
}

// handleSend authorizes the destination, persists game-room messages
// through the pipeline, and fans out the canonical row. Rejections go
// back on the session's error channel without closing it.
func (cs ChatSocket) handleSend(r *http.Request, session *realtime.Session, frame realtime.Frame) {
	identity := session.Identity()
	if identity == nil {
		session.SendError(chat.CodeUnauthenticated, "not connected")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := cs.Authorizer.Authorize(ctx, identity, frame.Destination); err != nil {
		sendFrameError(session, err)
		return
	}

	gameID, ok := realtime.ParseGameDestination(frame.Destination)
	if !ok {
		// Addresses outside the game namespace bypass the pipeline.
		cs.Publisher.Publish(realtime.TopicDestination(frame.Destination), frame.Body)
		return
	}

	var sub models.ChatSubmission
	if len(frame.Body) > 0 {
		if err := json.Unmarshal(frame.Body, &sub); err != nil {
			session.SendError(chat.CodeBadRequest, "malformed message body")
			return
		}
	}
	// The session identity is authoritative for who is speaking.
	sub.Sender = identity.Username

	msg, err := cs.Service.Record(ctx, gameID, sub)
	if err != nil {
		sendFrameError(session, err)
		return
	}
	cs.Publisher.Publish(realtime.TopicDestination(frame.Destination), msg)
}

// handleSubscribe authorizes the destination then registers interest
func (cs ChatSocket) handleSubscribe(r *http.Request, session *realtime.Session, frame realtime.Frame) {
	identity := session.Identity()
	if identity == nil {
		session.SendError(chat.CodeUnauthenticated, "not connected")
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()
	if err := cs.Authorizer.Authorize(ctx, identity, frame.Destination); err != nil {
		sendFrameError(session, err)
		return
	}
	cs.Hub.Subscribe(session, frame.Destination)
}

func sendFrameError(session *realtime.Session, err error) {
	code := chat.CodeOf(err)
	if code == "" {
		zap.S().Errorw("chat frame failed",
			"session", session.ID,
			"error", err,
		)
		session.SendError("INTERNAL", "internal error")
		return
	}
	session.SendError(code, err.Error())
}
