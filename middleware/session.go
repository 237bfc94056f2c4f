package middleware

import (
	"cafe-ordering-api/session"

	"github.com/gin-gonic/gin"
)

const SessionHeader = "X-Session-ID"

// Session attaches the caller's session, creating one when the header is
// missing or unknown. The id in effect is always echoed back.
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := store.GetOrCreate(c.GetHeader(SessionHeader))
		c.Set("session", sess)
		c.Header(SessionHeader, sess.ID)
		c.Next()
	}
}

func GetSession(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}
