package realtime

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Frame types for the websocket text protocol
const (
	FrameConnect     = "CONNECT"
	FrameConnected   = "CONNECTED"
	FrameSend        = "SEND"
	FrameSubscribe   = "SUBSCRIBE"
	FrameUnsubscribe = "UNSUBSCRIBE"
	FrameMessage     = "MESSAGE"
	FrameError       = "ERROR"
)

// Frame is one JSON text frame on the chat websocket. CONNECT carries
// credentials in Headers; SEND and SUBSCRIBE address a destination;
// MESSAGE and ERROR flow server to client.
type Frame struct {
	Type        string            `json:"type"`
	Destination string            `json:"destination,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        json.RawMessage   `json:"body,omitempty"`
}

var gameDestinationPattern = regexp.MustCompile(`^/(app|topic)/games/(\d+)(/.*)?$`)

// ParseGameDestination extracts the game id from a game-room address.
// Destinations outside /app/games/... and /topic/games/... return
// ok=false and bypass this subsystem entirely.
func ParseGameDestination(destination string) (int64, bool) {
	m := gameDestinationPattern.FindStringSubmatch(destination)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// TopicDestination mirrors an inbound /app address onto the /topic
// address its subscribers listen on
func TopicDestination(destination string) string {
	if strings.HasPrefix(destination, "/app/") {
		return "/topic/" + strings.TrimPrefix(destination, "/app/")
	}
	return destination
}
