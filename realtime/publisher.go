package realtime

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"
	"go.uber.org/zap"

	"github.com/pickupsports/game-chat-api/models"
)

// Broadcaster is the local delivery half of fan-out; Hub implements it
type Broadcaster interface {
	Broadcast(destination string, payload []byte)
}

// Publisher delivers a payload to every subscriber of a destination on
// every node, best-effort, with no delivery acknowledgment. The
// strategy is chosen once at startup.
type Publisher interface {
	Publish(destination string, payload interface{})
}

// LocalPublisher broadcasts directly to this process's sessions. It is
// correct only for single-node deployments.
type LocalPublisher struct {
	Hub Broadcaster
}

// Publish marshals the payload and broadcasts it locally
func (p *LocalPublisher) Publish(destination string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Errorw("failed to marshal outbound payload",
			"destination", destination,
			"error", err,
		)
		return
	}
	p.Hub.Broadcast(destination, data)
}

// ClusteredPublisher serializes an envelope onto the shared redis
// channel so every node, this one included, re-broadcasts to its own
// sessions. When the channel is unavailable it degrades to a local
// broadcast; local delivery is never sacrificed for cluster
// consistency.
type ClusteredPublisher struct {
	Pool    *redis.Pool
	Channel string
	Hub     Broadcaster
}

// Publish sends the envelope to the cluster channel, falling back to a
// local broadcast on failure
func (p *ClusteredPublisher) Publish(destination string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		zap.S().Errorw("failed to marshal outbound payload",
			"destination", destination,
			"error", err,
		)
		return
	}

	envelope, err := json.Marshal(models.OutboundEnvelope{
		Destination: destination,
		Payload:     data,
	})
	if err != nil {
		zap.S().Errorw("failed to marshal envelope",
			"destination", destination,
			"error", err,
		)
		p.Hub.Broadcast(destination, data)
		return
	}

	conn := p.Pool.Get()
	defer conn.Close()
	if _, err := conn.Do("PUBLISH", p.Channel, envelope); err != nil {
		zap.S().Warnw("cluster channel unavailable, delivering locally only",
			"channel", p.Channel,
			"destination", destination,
			"error", err,
		)
		p.Hub.Broadcast(destination, data)
	}
}
