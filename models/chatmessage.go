package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage holds the structure for the chatmessages collection in mongo.
// MessageID is assigned by the store and is strictly increasing within a
// game. ClientID is the caller-chosen idempotency token; at most one
// document exists per (gameId, non-empty clientId).
type ChatMessage struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	MessageID int64              `json:"messageId" bson:"messageId"`
	GameID    int64              `json:"gameId" bson:"gameId"`
	ClientID  string             `json:"clientId,omitempty" bson:"clientId,omitempty"`
	Sender    string             `json:"sender" bson:"sender"`
	Content   string             `json:"content" bson:"content"`
	SentAt    time.Time          `json:"sentAt" bson:"sentAt"`
}

// ChatSubmission holds the structure for an inbound chat message, either
// from a SEND frame body or the REST submit endpoint. A zero SentAt is
// defaulted server-side.
type ChatSubmission struct {
	ClientID string    `json:"clientId,omitempty"`
	Sender   string    `json:"sender"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sentAt,omitempty"`
}
