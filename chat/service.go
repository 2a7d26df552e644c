package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/databases"
	"github.com/pickupsports/game-chat-api/models"
)

// Read query clamps, matching the REST surface contract
const (
	historyMinLimit     = 1
	historyMaxLimit     = 200
	historyDefaultLimit = 50
	sinceMaxLimit       = 500
	sinceDefaultLimit   = 100
)

// Service runs the chat submission pipeline: idempotency, sender
// validation, moderation, rate limiting, profanity screening,
// persistence, and duplicate-race resolution. The unique
// (gameId, clientId) index plus re-read is the only concurrency
// control; there is no lock anywhere in the pipeline.
type Service struct {
	Messages   databases.ChatMessageDatabase
	Games      databases.GameDatabase
	Moderation databases.ModerationDatabase
	Filter     *ProfanityFilter
	Limiter    RateLimiter
	RateLimit  int
	RateWindow time.Duration
}

// Record validates and persists one submission for the game, returning
// the canonical stored row. Retried submissions carrying the same
// clientId get the original row back, whether the duplicate arrives
// before or during the insert.
func (s *Service) Record(ctx context.Context, gameID int64, sub models.ChatSubmission) (*models.ChatMessage, error) {
	if sub.SentAt.IsZero() {
		sub.SentAt = time.Now().UTC()
	}
	clientID := strings.TrimSpace(sub.ClientID)

	// Fast idempotency check before any validation or side effect.
	if clientID != "" {
		existing, err := s.Messages.FindByClientID(ctx, gameID, clientID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
	}

	sender := sub.Sender
	if strings.TrimSpace(sender) == "" {
		return nil, ErrSenderRequired
	}

	kicked, err := s.Moderation.IsKicked(ctx, gameID, sender)
	if err != nil {
		return nil, err
	}
	if kicked {
		zap.S().Infow("chat message blocked",
			"gameId", gameID,
			"sender", sender,
			"reason", "kicked",
		)
		return nil, ErrKicked
	}
	muted, err := s.Moderation.IsMuted(ctx, gameID, sender)
	if err != nil {
		return nil, err
	}
	if muted {
		zap.S().Infow("chat message blocked",
			"gameId", gameID,
			"sender", sender,
			"reason", "muted",
		)
		return nil, ErrMuted
	}

	if !s.allow(sender) {
		zap.S().Infow("chat message rate limited",
			"gameId", gameID,
			"sender", sender,
		)
		return nil, ErrRateLimited
	}

	if s.Filter != nil && s.Filter.Enabled() && sub.Content != "" {
		if s.Filter.Contains(sub.Content) {
			if s.Filter.ShouldReject() {
				return nil, ErrProfanity
			}
			sub.Content = s.Filter.Sanitize(sub.Content)
		}
	}

	if _, err := s.Games.FindOne(ctx, gameID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, GameNotFound(gameID)
		}
		return nil, err
	}

	msg, err := s.Messages.InsertOne(ctx, models.ChatMessage{
		GameID:   gameID,
		ClientID: clientID,
		Sender:   sender,
		Content:  sub.Content,
		SentAt:   sub.SentAt,
	})
	if err != nil {
		// Race on the unique (gameId, clientId) index: a concurrent
		// duplicate won; return the winning row exactly as the fast
		// path would have.
		if clientID != "" && mongo.IsDuplicateKeyError(err) {
			winner, ferr := s.Messages.FindByClientID(ctx, gameID, clientID)
			if ferr != nil {
				return nil, err
			}
			zap.S().Debugw("duplicate chat submission absorbed",
				"gameId", gameID,
				"clientId", clientID,
			)
			return winner, nil
		}
		return nil, err
	}

	zap.S().Debugw("saved chat message",
		"messageId", msg.MessageID,
		"gameId", gameID,
		"sender", sender,
		"sentAt", msg.SentAt,
	)
	return msg, nil
}

// allow asks the limiter, failing open when none is configured
func (s *Service) allow(sender string) bool {
	if s.Limiter == nil || s.RateLimit <= 0 {
		return true
	}
	return s.Limiter.Allow("chat:"+sender, s.RateLimit, s.RateWindow)
}

// History returns up to limit messages at or before the cutoff, newest
// first. A zero cutoff means now.
func (s *Service) History(ctx context.Context, gameID int64, before time.Time, limit int) ([]models.ChatMessage, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}
	size := clamp(limit, historyMinLimit, historyMaxLimit, historyDefaultLimit)

	if _, err := s.Games.FindOne(ctx, gameID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, GameNotFound(gameID)
		}
		return nil, err
	}
	return s.Messages.History(ctx, gameID, before, size)
}

// Latest returns the newest limit messages reordered oldest first
func (s *Service) Latest(ctx context.Context, gameID int64, limit int) ([]models.ChatMessage, error) {
	size := clamp(limit, historyMinLimit, historyMaxLimit, historyDefaultLimit)
	desc, err := s.Messages.Latest(ctx, gameID, size)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}
	return desc, nil
}

// Since returns up to limit messages strictly after the cutoff, oldest
// first. A zero cutoff means the epoch.
func (s *Service) Since(ctx context.Context, gameID int64, after time.Time, limit int) ([]models.ChatMessage, error) {
	if after.IsZero() {
		after = time.Unix(0, 0).UTC()
	}
	size := clamp(limit, historyMinLimit, sinceMaxLimit, sinceDefaultLimit)
	return s.Messages.Since(ctx, gameID, after, size)
}

func clamp(requested, min, max, dflt int) int {
	v := requested
	if v <= 0 {
		v = dflt
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}
