package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campwild-api-io/api/internal/auth"
	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/util"
)

const sessionContextKey = "session"

// Authenticated rejects requests without a valid login session. The path
// the request was aiming at is remembered so the client can send the user
// back there after login.
func Authenticated(sessions *auth.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := sessions.Get(c)
		if err != nil {
			if c.Request.Method == http.MethodGet {
				sessions.RememberReturnTo(c, c.Request.URL.Path)
			}
			util.HandleError(c, apperr.New(apperr.Unauthorized, "you must be signed in first"))
			c.Abort()
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

// CurrentSession returns the principal stashed by Authenticated.
func CurrentSession(c *gin.Context) (auth.UserSession, bool) {
	value, ok := c.Get(sessionContextKey)
	if !ok {
		return auth.UserSession{}, false
	}
	session, ok := value.(auth.UserSession)
	return session, ok
}
