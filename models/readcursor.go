package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReadCursor tracks how far a user has read in a game's chat. One
// document per (user, gameId); lastReadAt only ever moves forward,
// lastReadMessageId is last-writer-wins.
type ReadCursor struct {
	ID                primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	User              string             `json:"user" bson:"user"`
	GameID            int64              `json:"gameId" bson:"gameId"`
	LastReadAt        time.Time          `json:"lastReadAt" bson:"lastReadAt"`
	LastReadMessageID int64              `json:"lastReadMessageId" bson:"lastReadMessageId"`
}

// UpdateReadCursorRequest holds the structure for advancing a read cursor.
// LastReadMessageID is optional; when nil the stored value is untouched.
type UpdateReadCursorRequest struct {
	LastReadAt        time.Time `json:"lastReadAt"`
	LastReadMessageID *int64    `json:"lastReadMessageId,omitempty"`
}

// UnreadCountResponse holds the structure for the unread count response
type UnreadCountResponse struct {
	GameID int64 `json:"gameId"`
	Unread int64 `json:"unread"`
}
