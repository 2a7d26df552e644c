package databases

// go generate: mockery --name ChatMessageDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickupsports/game-chat-api/models"
)

const chatMessageName = "chatmessages"
const counterName = "counters"

// ChatMessageDatabase contains the methods to use with the chat message database
type ChatMessageDatabase interface {
	FindByClientID(ctx context.Context, gameID int64, clientID string) (*models.ChatMessage, error)
	InsertOne(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error)
	History(ctx context.Context, gameID int64, before time.Time, limit int) ([]models.ChatMessage, error)
	Latest(ctx context.Context, gameID int64, limit int) ([]models.ChatMessage, error)
	Since(ctx context.Context, gameID int64, after time.Time, limit int) ([]models.ChatMessage, error)
	CountAfter(ctx context.Context, gameID int64, after time.Time) (int64, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type chatMessageDatabase struct {
	db DatabaseHelper
}

// NewChatMessageDatabase initializes a new instance of chat message database with the provided db connection
func NewChatMessageDatabase(db DatabaseHelper) ChatMessageDatabase {
	return &chatMessageDatabase{
		db: db,
	}
}

func (c *chatMessageDatabase) FindByClientID(ctx context.Context, gameID int64, clientID string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{}
	err := c.db.Collection(chatMessageName).
		FindOne(ctx, bson.M{"gameId": gameID, "clientId": clientID}).
		Decode(msg)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// InsertOne assigns the next per-game message id from the counters
// collection and inserts the document. A duplicate key error on the
// (gameId, clientId) unique index is returned to the caller unwrapped
// so the pipeline can resolve the race.
func (c *chatMessageDatabase) InsertOne(ctx context.Context, msg models.ChatMessage) (*models.ChatMessage, error) {
	seq, err := c.nextMessageID(ctx, msg.GameID)
	if err != nil {
		return nil, err
	}
	msg.MessageID = seq

	_, err = c.db.Collection(chatMessageName).InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// nextMessageID increments the per-game sequence document and returns
// the new value. The upsert creates the counter on first use; mongo
// serializes the $inc so ids are strictly increasing within a game.
func (c *chatMessageDatabase) nextMessageID(ctx context.Context, gameID int64) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := c.db.Collection(counterName).
		FindOneAndUpdate(ctx,
			bson.M{"_id": bson.M{"scope": "chat", "gameId": gameID}},
			bson.M{"$inc": bson.M{"seq": int64(1)}},
			opts,
		).
		Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (c *chatMessageDatabase) History(ctx context.Context, gameID int64, before time.Time, limit int) ([]models.ChatMessage, error) {
	filter := bson.M{"gameId": gameID, "sentAt": bson.M{"$lte": before}}
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}, {Key: "messageId", Value: -1}}).
		SetLimit(int64(limit))
	return c.find(ctx, filter, opts)
}

func (c *chatMessageDatabase) Latest(ctx context.Context, gameID int64, limit int) ([]models.ChatMessage, error) {
	filter := bson.M{"gameId": gameID}
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: -1}, {Key: "messageId", Value: -1}}).
		SetLimit(int64(limit))
	return c.find(ctx, filter, opts)
}

func (c *chatMessageDatabase) Since(ctx context.Context, gameID int64, after time.Time, limit int) ([]models.ChatMessage, error) {
	filter := bson.M{"gameId": gameID, "sentAt": bson.M{"$gt": after}}
	opts := options.Find().
		SetSort(bson.D{{Key: "sentAt", Value: 1}, {Key: "messageId", Value: 1}}).
		SetLimit(int64(limit))
	return c.find(ctx, filter, opts)
}

func (c *chatMessageDatabase) CountAfter(ctx context.Context, gameID int64, after time.Time) (int64, error) {
	return c.db.Collection(chatMessageName).
		CountDocuments(ctx, bson.M{"gameId": gameID, "sentAt": bson.M{"$gt": after}})
}

func (c *chatMessageDatabase) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return c.db.Collection(chatMessageName).
		DeleteMany(ctx, bson.M{"sentAt": bson.M{"$lt": cutoff}})
}

// EnsureIndexes creates the unique partial index backing the
// idempotency contract plus the read-path indexes.
func (c *chatMessageDatabase) EnsureIndexes(ctx context.Context) error {
	indexes := c.db.Collection(chatMessageName).Indexes()

	_, err := indexes.CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "gameId", Value: 1}, {Key: "clientId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"clientId": bson.M{"$exists": true}}),
	})
	if err != nil {
		return err
	}

	_, err = indexes.CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "gameId", Value: 1}, {Key: "sentAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = indexes.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gameId", Value: 1}, {Key: "messageId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (c *chatMessageDatabase) find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	curr, err := c.db.Collection(chatMessageName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer curr.Close(ctx)
	err = curr.All(ctx, &messages)
	if err != nil {
		return nil, err
	}
	return messages, nil
}
