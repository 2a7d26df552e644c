package databases

// go generate: mockery --name ReadCursorDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickupsports/game-chat-api/models"
)

const readCursorName = "readcursors"

// ReadCursorDatabase contains the methods to use with the read cursor database
type ReadCursorDatabase interface {
	FindOne(ctx context.Context, user string, gameID int64) (*models.ReadCursor, error)
	Advance(ctx context.Context, user string, gameID int64, lastReadAt time.Time, lastReadMessageID *int64) (*models.ReadCursor, error)
	EnsureIndexes(ctx context.Context) error
}

type readCursorDatabase struct {
	db DatabaseHelper
}

// NewReadCursorDatabase initializes a new instance of read cursor database with the provided db connection
func NewReadCursorDatabase(db DatabaseHelper) ReadCursorDatabase {
	return &readCursorDatabase{
		db: db,
	}
}

func (r *readCursorDatabase) FindOne(ctx context.Context, user string, gameID int64) (*models.ReadCursor, error) {
	cursor := &models.ReadCursor{}
	err := r.db.Collection(readCursorName).
		FindOne(ctx, bson.M{"user": user, "gameId": gameID}).
		Decode(cursor)
	if err != nil {
		return nil, err
	}
	return cursor, nil
}

// Advance moves the cursor forward in a single atomic update. $max keeps
// lastReadAt monotonic under concurrent multi-device updates; the
// message id, when supplied, is last-writer-wins. The document is
// created lazily on first update.
func (r *readCursorDatabase) Advance(ctx context.Context, user string, gameID int64, lastReadAt time.Time, lastReadMessageID *int64) (*models.ReadCursor, error) {
	filter := bson.M{"user": user, "gameId": gameID}
	update := bson.M{"$max": bson.M{"lastReadAt": lastReadAt}}
	if lastReadMessageID != nil {
		update["$set"] = bson.M{"lastReadMessageId": *lastReadMessageID}
	}

	_, err := r.db.Collection(readCursorName).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// Two devices can race the upsert; the loser retries against
		// the now-existing document.
		if !mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		_, err = r.db.Collection(readCursorName).UpdateOne(ctx, filter, update)
		if err != nil {
			return nil, err
		}
	}

	return r.FindOne(ctx, user, gameID)
}

// EnsureIndexes creates the unique (user, gameId) index that makes the
// lazy upsert safe.
func (r *readCursorDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(readCursorName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "gameId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
