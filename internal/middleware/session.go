package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionKey    = "session_id"
	SessionHeader = "X-Session-ID"
	SessionCookie = "astro_session"

	sessionCookieMaxAge = 30 * 24 * 60 * 60
)

// Session identifies the caller so their latest report can be found again.
// The id comes from the X-Session-ID header, then the astro_session cookie;
// a fresh one is issued when neither is present.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = strings.TrimSpace(cookie)
			}
		}
		if id == "" {
			id = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, sessionCookieMaxAge, "/", "", false, true)
		}

		c.Set(SessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID returns the id stored by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
