package chat

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/pickupsports/game-chat-api/databases"
	"github.com/pickupsports/game-chat-api/models"
)

// CursorService tracks per-user read positions. Cursors are created
// lazily; a user who never read a game gets the epoch default.
type CursorService struct {
	Cursors  databases.ReadCursorDatabase
	Messages databases.ChatMessageDatabase
}

// Get returns the stored cursor, or the never-read default when none
// exists.
func (c *CursorService) Get(ctx context.Context, user string, gameID int64) (*models.ReadCursor, error) {
	cursor, err := c.Cursors.FindOne(ctx, user, gameID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &models.ReadCursor{
				User:       user,
				GameID:     gameID,
				LastReadAt: time.Unix(0, 0).UTC(),
			}, nil
		}
		return nil, err
	}
	return cursor, nil
}

// Update advances the cursor. lastReadAt only moves forward; an older
// timestamp leaves it untouched. lastReadMessageId, when supplied,
// overwrites unconditionally.
func (c *CursorService) Update(ctx context.Context, user string, gameID int64, req models.UpdateReadCursorRequest) (*models.ReadCursor, error) {
	if req.LastReadAt.IsZero() {
		return nil, BadRequest("lastReadAt required")
	}
	return c.Cursors.Advance(ctx, user, gameID, req.LastReadAt, req.LastReadMessageID)
}

// UnreadCount counts messages strictly after the cursor's lastReadAt
func (c *CursorService) UnreadCount(ctx context.Context, user string, gameID int64) (int64, error) {
	cursor, err := c.Get(ctx, user, gameID)
	if err != nil {
		return 0, err
	}
	return c.Messages.CountAfter(ctx, gameID, cursor.LastReadAt)
}
