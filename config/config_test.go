package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("CHAT_RATE_LIMIT")
	os.Unsetenv("CHAT_RATE_WINDOW_SECONDS")
	os.Unsetenv("CHAT_CHANNEL")
	os.Unsetenv("AUTH_HEADER_NAME")
	os.Unsetenv("AUTH_HEADER_PREFIX")
	conf := New()

	assert.Equal(t, 20, conf.ChatRateLimit)
	assert.Equal(t, "chat-messages", conf.ChatChannel)
	assert.Equal(t, "Authorization", conf.AuthHeaderName)
	assert.Equal(t, "Bearer ", conf.AuthHeaderPrefix)
}

func TestNewOverrides(t *testing.T) {
	os.Setenv("CHAT_RATE_LIMIT", "5")
	os.Setenv("PROFANITY_REJECT", "true")
	os.Setenv("PROFANITY_WORDS", "darn, heck ,")
	defer func() {
		os.Unsetenv("CHAT_RATE_LIMIT")
		os.Unsetenv("PROFANITY_REJECT")
		os.Unsetenv("PROFANITY_WORDS")
	}()
	conf := New()

	assert.Equal(t, 5, conf.ChatRateLimit)
	assert.True(t, conf.ProfanityReject)
	assert.Equal(t, []string{"darn", "heck"}, conf.ProfanityWords)
}

func TestNewBadIntFallsBack(t *testing.T) {
	os.Setenv("CHAT_RATE_LIMIT", "lots")
	defer os.Unsetenv("CHAT_RATE_LIMIT")
	conf := New()

	assert.Equal(t, 20, conf.ChatRateLimit)
}

func TestErrorStatus(t *testing.T) {

	ErrorStatus("error it borked", http.StatusBadRequest, httptest.NewRecorder(), errors.New("bad request"))
	assert.True(t, true)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
