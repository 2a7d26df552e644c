package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string

	// Chat pipeline settings
	ChatRateLimit  int
	ChatRateWindow time.Duration
	RetentionDays  int

	// Profanity screen settings
	ProfanityEnabled bool
	ProfanityReject  bool
	ProfanityWords   []string
	DictionaryPath   string

	// Cluster fan-out settings
	ClusterFanout bool
	ChatChannel   string
	RedisURL      string

	// Realtime auth settings
	JWTSecret        string
	AuthHeaderName   string
	AuthHeaderPrefix string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),

		ChatRateLimit:  envInt("CHAT_RATE_LIMIT", 20),
		ChatRateWindow: time.Duration(envInt("CHAT_RATE_WINDOW_SECONDS", 60)) * time.Second,
		RetentionDays:  envInt("CHAT_RETENTION_DAYS", 0),

		ProfanityEnabled: envBool("PROFANITY_ENABLED", true),
		ProfanityReject:  envBool("PROFANITY_REJECT", false),
		ProfanityWords:   envList("PROFANITY_WORDS"),
		DictionaryPath:   os.Getenv("PROFANITY_DICTIONARY_PATH"),

		ClusterFanout: envBool("CLUSTER_FANOUT_ENABLED", false),
		ChatChannel:   envDefault("CHAT_CHANNEL", "chat-messages"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		AuthHeaderName:   envDefault("AUTH_HEADER_NAME", "Authorization"),
		AuthHeaderPrefix: envDefault("AUTH_HEADER_PREFIX", "Bearer "),
	}

}

// setLogger builds the zap logger for the given environment
func setLogger(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		zap.S().Warnw("invalid integer env var, using default",
			"key", key,
			"value", v,
		)
		return fallback
	}
	return i
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
