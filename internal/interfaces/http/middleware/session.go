package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/satyaprakrati/cozico/internal/infrastructure/logger"
)

// SessionIDKey holds the shopper session ID in the gin context as a string
const SessionIDKey = "session_id"

const sessionUUIDKey = "session_uuid"

// SessionConfig controls how shopper sessions are carried
type SessionConfig struct {
	HeaderName   string
	CookieName   string
	CookieMaxAge time.Duration
	CookieSecure bool
}

// DefaultSessionConfig returns the storefront defaults
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		HeaderName:   "X-Session-ID",
		CookieName:   "cozico_session",
		CookieMaxAge: 30 * 24 * time.Hour,
	}
}

// Session identifies the shopper. The ID is read from the session header,
// then the session cookie; a missing or malformed ID gets a new UUID. The
// ID is echoed in both the header and the cookie.
func Session(cfg SessionConfig) gin.HandlerFunc {
	defaults := DefaultSessionConfig()
	if cfg.HeaderName == "" {
		cfg.HeaderName = defaults.HeaderName
	}
	if cfg.CookieName == "" {
		cfg.CookieName = defaults.CookieName
	}
	if cfg.CookieMaxAge <= 0 {
		cfg.CookieMaxAge = defaults.CookieMaxAge
	}

	return func(c *gin.Context) {
		id, ok := parseSessionID(c.GetHeader(cfg.HeaderName))
		if !ok {
			if cookie, err := c.Cookie(cfg.CookieName); err == nil {
				id, ok = parseSessionID(cookie)
			}
		}
		if !ok {
			id = uuid.New()
		}

		c.Set(SessionIDKey, id.String())
		c.Set(sessionUUIDKey, id)
		c.Header(cfg.HeaderName, id.String())
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    id.String(),
			Path:     "/",
			MaxAge:   int(cfg.CookieMaxAge.Seconds()),
			Secure:   cfg.CookieSecure,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := c.Request.Context()
		ctx, _ = logger.WithSessionID(ctx, logger.FromContext(ctx), id.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetSessionID returns the session set by Session
func GetSessionID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(sessionUUIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func parseSessionID(raw string) (uuid.UUID, bool) {
	if raw == "" || len(raw) > 64 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
