package models

import "encoding/json"

// OutboundEnvelope is the wire format carried on the cluster fan-out
// channel. It is never persisted; every node that receives one
// re-broadcasts the payload to its own sessions subscribed to the
// destination.
type OutboundEnvelope struct {
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}
