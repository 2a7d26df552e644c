package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGameDestination(t *testing.T) {
	tests := []struct {
		destination string
		wantID      int64
		wantOK      bool
	}{
		{"/app/games/42/chat", 42, true},
		{"/topic/games/42/chat", 42, true},
		{"/app/games/7", 7, true},
		{"/topic/games/123/chat/typing", 123, true},
		{"/app/games/abc/chat", 0, false},
		{"/queue/games/42/chat", 0, false},
		{"/app/users/42", 0, false},
		{"games/42/chat", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		id, ok := ParseGameDestination(tt.destination)
		assert.Equal(t, tt.wantOK, ok, tt.destination)
		assert.Equal(t, tt.wantID, id, tt.destination)
	}
}

func TestTopicDestination(t *testing.T) {
	assert.Equal(t, "/topic/games/42/chat", TopicDestination("/app/games/42/chat"))
	assert.Equal(t, "/topic/games/42/chat", TopicDestination("/topic/games/42/chat"))
	assert.Equal(t, "/queue/other", TopicDestination("/queue/other"))
}
