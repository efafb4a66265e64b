package auth

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var SessionCookie = "____cw"

// ErrNoSession is returned when the request carries no usable session.
var ErrNoSession = errors.New("no active session")

type UserSession struct {
	ExpiresAt time.Time          `json:"expiresAt"`
	UserId    primitive.ObjectID `json:"userId"`
	Username  string             `json:"username"`
}

func (s UserSession) MarshalBinary() ([]byte, error) {
	return json.Marshal(s)
}

func (s *UserSession) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, s)
}

// Expired checks if user session is expired.
func (s UserSession) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

// redisCommands is the slice of the redis client the session store needs.
type redisCommands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SessionStore keeps login sessions in Redis keyed by a random cookie
// token.
type SessionStore struct {
	redis redisCommands
	ttl   time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: client, ttl: ttl}
}

// Set creates a new login session and sets the session cookie.
func (ss *SessionStore) Set(c *gin.Context, userID primitive.ObjectID, username string) (string, error) {
	key := GenerateSecureToken(20)
	value := UserSession{
		UserId:    userID,
		Username:  username,
		ExpiresAt: time.Now().Add(ss.ttl),
	}

	c.SetCookie(SessionCookie, key, int(ss.ttl.Seconds()), "/", domainFromRequest(c), isHTTPS(c), true)
	return key, ss.redis.Set(c, sessionKey(key), value, ss.ttl).Err()
}

// Get loads the session for the request's cookie.
func (ss *SessionStore) Get(c *gin.Context) (UserSession, error) {
	key, err := c.Cookie(SessionCookie)
	if err != nil || key == "" {
		return UserSession{}, ErrNoSession
	}

	value, err := ss.redis.Get(c, sessionKey(key)).Result()
	if err == redis.Nil {
		return UserSession{}, ErrNoSession
	}
	if err != nil {
		return UserSession{}, err
	}

	var session UserSession
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return UserSession{}, err
	}
	if session.Expired() {
		return UserSession{}, ErrNoSession
	}
	return session, nil
}

// Clear drops the session server-side and expires the cookie.
func (ss *SessionStore) Clear(c *gin.Context) error {
	key, err := c.Cookie(SessionCookie)
	if err != nil || key == "" {
		return nil
	}
	c.SetCookie(SessionCookie, "", -1, "/", domainFromRequest(c), isHTTPS(c), true)
	return ss.redis.Del(c, sessionKey(key)).Err()
}

func sessionKey(key string) string {
	return "session:" + key
}

func domainFromRequest(c *gin.Context) string {
	host := c.Request.Host

	// Remove port
	if colonIndex := strings.LastIndex(host, ":"); colonIndex != -1 {
		host = host[:colonIndex]
	}

	if host == "localhost" || host == "127.0.0.1" {
		return "localhost"
	}

	parts := strings.Split(host, ".")
	if len(parts) >= 2 {
		return "." + strings.Join(parts[len(parts)-2:], ".")
	}

	return host
}

func isHTTPS(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	if c.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}
	if c.GetHeader("X-Forwarded-Ssl") == "on" {
		return true
	}
	return false
}
