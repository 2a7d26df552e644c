package databases

// go generate: mockery --name GameDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/pickupsports/game-chat-api/models"
)

const gameName = "games"

// GameDatabase contains the methods to use with the game database. Games
// are owned by the surrounding system; chat only resolves them and asks
// the membership question.
type GameDatabase interface {
	FindOne(ctx context.Context, gameID int64) (*models.Game, error)
	IsParticipant(ctx context.Context, gameID int64, username string) (bool, error)
}

type gameDatabase struct {
	db DatabaseHelper
}

// NewGameDatabase initializes a new instance of game database with the provided db connection
func NewGameDatabase(db DatabaseHelper) GameDatabase {
	return &gameDatabase{
		db: db,
	}
}

func (g *gameDatabase) FindOne(ctx context.Context, gameID int64) (*models.Game, error) {
	game := &models.Game{}
	err := g.db.Collection(gameName).FindOne(ctx, bson.M{"_id": gameID}).Decode(game)
	if err != nil {
		return nil, err
	}
	return game, nil
}

func (g *gameDatabase) IsParticipant(ctx context.Context, gameID int64, username string) (bool, error) {
	count, err := g.db.Collection(gameName).
		CountDocuments(ctx, bson.M{"_id": gameID, "participants": username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
