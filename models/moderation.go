package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GameModeration holds the per-game muted and kicked user sets in the
// gamemoderation collection. A user present in Kicked cannot post at
// all; Muted users keep their membership but their messages are refused.
type GameModeration struct {
	ID     primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	GameID int64              `json:"gameId" bson:"gameId"`
	Muted  []string           `json:"muted" bson:"muted"`
	Kicked []string           `json:"kicked" bson:"kicked"`
}

// ModerationRequest holds the structure for mute/kick admin requests
type ModerationRequest struct {
	Username string `json:"username"`
}
