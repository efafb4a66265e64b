package auth

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

var returnToCookie = "____cwrt"

const returnToTTL = 15 * time.Minute

// RememberReturnTo records the path an unauthenticated request was aiming
// at, keyed by an anonymous cookie. The slot holds a single destination;
// remembering again overwrites it.
func (ss *SessionStore) RememberReturnTo(c *gin.Context, path string) {
	if path == "" || !strings.HasPrefix(path, "/") {
		return
	}

	token, err := c.Cookie(returnToCookie)
	if err != nil || token == "" {
		token = GenerateSecureToken(20)
		c.SetCookie(returnToCookie, token, int(returnToTTL.Seconds()), "/", domainFromRequest(c), isHTTPS(c), true)
	}

	if err := ss.redis.Set(c, "returnto:"+token, path, returnToTTL).Err(); err != nil {
		// losing the redirect target is not worth failing the request
		return
	}
}

// ConsumeReturnTo reads and clears the pending destination. The slot is
// emptied on first use so a stale target never outlives one login.
func (ss *SessionStore) ConsumeReturnTo(c *gin.Context) string {
	token, err := c.Cookie(returnToCookie)
	if err != nil || token == "" {
		return ""
	}

	path, err := ss.redis.GetDel(c, "returnto:"+token).Result()
	c.SetCookie(returnToCookie, "", -1, "/", domainFromRequest(c), isHTTPS(c), true)
	if err == redis.Nil || err != nil {
		return ""
	}
	return path
}
