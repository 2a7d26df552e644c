package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Session is one connected websocket client. Writes are serialized by
// the session mutex, which also guards the identity and subscription
// set.
type Session struct {
	ID   string
	conn *websocket.Conn

	mu            sync.Mutex
	identity      *Identity
	subscriptions map[string]bool
}

// Identity returns the identity attached at CONNECT, or nil
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// SetIdentity attaches the authenticated identity to the session
func (s *Session) SetIdentity(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = identity
}

// Send writes one frame to the client
func (s *Session) Send(frame Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(frame)
}

// SendError writes an ERROR frame carrying the category code without
// closing the session
func (s *Session) SendError(code, message string) {
	err := s.Send(Frame{
		Type:    FrameError,
		Headers: map[string]string{"code": code, "message": message},
	})
	if err != nil {
		zap.S().Debugw("failed to write error frame",
			"session", s.ID,
			"error", err,
		)
	}
}

func (s *Session) subscribed(destination string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions[destination]
}

// Hub tracks this process's sessions and performs the local half of
// fan-out: best-effort broadcast to every session subscribed to a
// destination.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

// Register adds a connection and returns its session
func (h *Hub) Register(conn *websocket.Conn) *Session {
	session := &Session{
		ID:            uuid.New().String(),
		conn:          conn,
		subscriptions: make(map[string]bool),
	}
	h.mu.Lock()
	h.sessions[session.ID] = session
	h.mu.Unlock()
	zap.S().Debugw("chat session registered", "session", session.ID)
	return session
}

// Unregister removes the session and closes its connection
func (h *Hub) Unregister(session *Session) {
	h.mu.Lock()
	delete(h.sessions, session.ID)
	h.mu.Unlock()
	session.conn.Close()
	zap.S().Debugw("chat session unregistered", "session", session.ID)
}

// Subscribe adds the destination to the session's subscription set
func (h *Hub) Subscribe(session *Session, destination string) {
	session.mu.Lock()
	session.subscriptions[destination] = true
	session.mu.Unlock()
}

// Unsubscribe removes the destination from the session's set
func (h *Hub) Unsubscribe(session *Session, destination string) {
	session.mu.Lock()
	delete(session.subscriptions, destination)
	session.mu.Unlock()
}

// Broadcast writes a MESSAGE frame to every local session subscribed
// to the destination. Write failures are logged and the dead session
// dropped; one bad client never blocks delivery to the rest.
func (h *Hub) Broadcast(destination string, payload []byte) {
	h.mu.RLock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, session := range h.sessions {
		if session.subscribed(destination) {
			targets = append(targets, session)
		}
	}
	h.mu.RUnlock()

	frame := Frame{
		Type:        FrameMessage,
		Destination: destination,
		Body:        json.RawMessage(payload),
	}
	for _, session := range targets {
		if err := session.Send(frame); err != nil {
			zap.S().Warnw("failed to deliver message, dropping session",
				"session", session.ID,
				"destination", destination,
				"error", err,
			)
			h.Unregister(session)
		}
	}
}

// Count returns the number of registered sessions
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
