package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/models"
)

const resubscribeDelay = 5 * time.Second

// Subscriber listens on the shared cluster channel and re-broadcasts
// every envelope to this node's sessions. Malformed or undeliverable
// messages are logged and swallowed; they never block ingestion of the
// ones behind them.
type Subscriber struct {
	Pool    *redis.Pool
	Channel string
	Hub     Broadcaster
}

// Run subscribes and dispatches until the context is canceled,
// reconnecting with a fixed delay after channel failures
func (s *Subscriber) Run(ctx context.Context) {
	for {
		if err := s.listen(ctx); err != nil {
			zap.S().Warnw("cluster channel subscription lost",
				"channel", s.Channel,
				"error", err,
			)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func (s *Subscriber) listen(ctx context.Context) error {
	conn := s.Pool.Get()
	defer conn.Close()

	psc := redis.PubSubConn{Conn: conn}
	if err := psc.Subscribe(s.Channel); err != nil {
		return err
	}
	defer psc.Unsubscribe(s.Channel)

	zap.S().Infow("subscribed to cluster chat channel", "channel", s.Channel)
	for {
		switch v := psc.Receive().(type) {
		case redis.Message:
			s.dispatch(v.Data)
		case error:
			return v
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *Subscriber) dispatch(data []byte) {
	var envelope models.OutboundEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		zap.S().Warnw("dropping malformed envelope",
			"channel", s.Channel,
			"error", err,
		)
		return
	}
	s.Hub.Broadcast(envelope.Destination, envelope.Payload)
}
