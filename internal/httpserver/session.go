package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "expomall_session"
	sessionKey    = "sessionID"
)

// sessionMiddleware resolves the caller's session id from the header or
// cookie, minting a fresh uuid when neither is present. The id is echoed
// back on both so browser and non-browser clients can hold on to it.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				id = cookie
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(sessionKey, id)
		c.Header(sessionHeader, id)
		c.SetCookie(sessionCookie, id, 60*60*24*30, "/", "", false, true)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
