package realtime

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pickupsports/game-chat-api/chat"
	"github.com/pickupsports/game-chat-api/config"
)

// DefaultRole is granted when a token carries no roles claim
const DefaultRole = "user"

// Identity is attached to a session after a successful CONNECT. It
// lives for the connection only and is never persisted.
type Identity struct {
	Username string
	Roles    []string
}

// Alternate header names probed when the configured one is absent
var fallbackHeaders = []string{"Authorization", "X-Authorization", "X-Auth-Token"}

// ConnectionAuthenticator validates the bearer credential presented at
// connect time. Failure means the connection attempt fails outright;
// no partial identity is ever attached.
type ConnectionAuthenticator struct {
	Secret       []byte
	HeaderName   string
	HeaderPrefix string
}

// NewConnectionAuthenticator builds the authenticator from config
func NewConnectionAuthenticator(conf *config.Config) *ConnectionAuthenticator {
	return &ConnectionAuthenticator{
		Secret:       []byte(conf.JWTSecret),
		HeaderName:   conf.AuthHeaderName,
		HeaderPrefix: conf.AuthHeaderPrefix,
	}
}

// Authenticate extracts and validates the credential from the given
// headers and returns the identity it proves.
func (a *ConnectionAuthenticator) Authenticate(headers map[string]string) (*Identity, error) {
	raw := a.credential(headers)
	if raw == "" {
		return nil, chat.Unauthenticated("missing credentials")
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, chat.Unauthenticated("invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return nil, chat.Unauthenticated("token missing subject")
	}

	return &Identity{Username: sub, Roles: parseRoles(claims["roles"])}, nil
}

// credential probes the configured header then the common alternates,
// returning the first non-blank value with its prefix stripped
func (a *ConnectionAuthenticator) credential(headers map[string]string) string {
	names := make([]string, 0, len(fallbackHeaders)+1)
	if a.HeaderName != "" {
		names = append(names, a.HeaderName)
	}
	names = append(names, fallbackHeaders...)

	for _, name := range names {
		if v := headerValue(headers, name); v != "" {
			return a.stripPrefix(v)
		}
	}
	return ""
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (a *ConnectionAuthenticator) stripPrefix(raw string) string {
	p := a.HeaderPrefix
	if p != "" && len(raw) >= len(p) && strings.EqualFold(raw[:len(p)], p) {
		return strings.TrimSpace(raw[len(p):])
	}
	return raw
}

// parseRoles accepts the roles claim as a JSON array or a
// comma-separated string; absence grants the single baseline role
func parseRoles(claim interface{}) []string {
	switch v := claim.(type) {
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok && strings.TrimSpace(s) != "" {
				roles = append(roles, strings.TrimSpace(s))
			}
		}
		if len(roles) > 0 {
			return roles
		}
	case string:
		roles := make([]string, 0)
		for _, r := range strings.Split(v, ",") {
			if t := strings.TrimSpace(r); t != "" {
				roles = append(roles, t)
			}
		}
		if len(roles) > 0 {
			return roles
		}
	}
	return []string{DefaultRole}
}
