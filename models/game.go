package models

import "time"

// Game holds the slice of the games collection this subsystem reads.
// Games are created and mutated elsewhere; chat only resolves them and
// checks membership, so the struct stays intentionally small.
type Game struct {
	ID           int64     `json:"gameId" bson:"_id"`
	Sport        string    `json:"sport" bson:"sport"`
	Location     string    `json:"location" bson:"location"`
	CreatedBy    string    `json:"createdBy" bson:"createdBy"`
	Participants []string  `json:"participants" bson:"participants"`
	StartsAt     time.Time `json:"startsAt" bson:"startsAt"`
}
