package databases

// go generate: mockery --name ModerationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickupsports/game-chat-api/models"
)

const moderationName = "gamemoderation"

// ModerationDatabase contains the methods to use with the per-game
// muted and kicked sets
type ModerationDatabase interface {
	FindOne(ctx context.Context, gameID int64) (*models.GameModeration, error)
	IsMuted(ctx context.Context, gameID int64, username string) (bool, error)
	IsKicked(ctx context.Context, gameID int64, username string) (bool, error)
	Mute(ctx context.Context, gameID int64, username string) error
	Unmute(ctx context.Context, gameID int64, username string) error
	Kick(ctx context.Context, gameID int64, username string) error
	Unkick(ctx context.Context, gameID int64, username string) error
	EnsureIndexes(ctx context.Context) error
}

type moderationDatabase struct {
	db DatabaseHelper
}

// NewModerationDatabase initializes a new instance of moderation database with the provided db connection
func NewModerationDatabase(db DatabaseHelper) ModerationDatabase {
	return &moderationDatabase{
		db: db,
	}
}

func (m *moderationDatabase) FindOne(ctx context.Context, gameID int64) (*models.GameModeration, error) {
	mod := &models.GameModeration{}
	err := m.db.Collection(moderationName).FindOne(ctx, bson.M{"gameId": gameID}).Decode(mod)
	if err != nil {
		return nil, err
	}
	return mod, nil
}

func (m *moderationDatabase) IsMuted(ctx context.Context, gameID int64, username string) (bool, error) {
	return m.inSet(ctx, gameID, "muted", username)
}

func (m *moderationDatabase) IsKicked(ctx context.Context, gameID int64, username string) (bool, error) {
	return m.inSet(ctx, gameID, "kicked", username)
}

func (m *moderationDatabase) Mute(ctx context.Context, gameID int64, username string) error {
	return m.addToSet(ctx, gameID, "muted", username)
}

func (m *moderationDatabase) Unmute(ctx context.Context, gameID int64, username string) error {
	return m.pullFromSet(ctx, gameID, "muted", username)
}

func (m *moderationDatabase) Kick(ctx context.Context, gameID int64, username string) error {
	return m.addToSet(ctx, gameID, "kicked", username)
}

func (m *moderationDatabase) Unkick(ctx context.Context, gameID int64, username string) error {
	return m.pullFromSet(ctx, gameID, "kicked", username)
}

// EnsureIndexes creates the unique gameId index backing the upsert in
// addToSet.
func (m *moderationDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(moderationName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gameId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (m *moderationDatabase) inSet(ctx context.Context, gameID int64, field, username string) (bool, error) {
	count, err := m.db.Collection(moderationName).
		CountDocuments(ctx, bson.M{"gameId": gameID, field: username})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (m *moderationDatabase) addToSet(ctx context.Context, gameID int64, field, username string) error {
	_, err := m.db.Collection(moderationName).UpdateOne(ctx,
		bson.M{"gameId": gameID},
		bson.M{"$addToSet": bson.M{field: username}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *moderationDatabase) pullFromSet(ctx context.Context, gameID int64, field, username string) error {
	_, err := m.db.Collection(moderationName).UpdateOne(ctx,
		bson.M{"gameId": gameID},
		bson.M{"$pull": bson.M{field: username}},
	)
	return err
}
