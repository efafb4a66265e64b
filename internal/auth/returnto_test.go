package auth

import (
	"context"
	"encoding"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// fakeRedis backs the session store in tests with a plain map, honoring the
// delete-on-read semantics of GETDEL.
type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case string:
		f.data[key] = v
	case encoding.BinaryMarshaler:
		raw, err := v.MarshalBinary()
		if err != nil {
			return redis.NewStatusResult("", err)
		}
		f.data[key] = string(raw)
	default:
		f.data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) GetDel(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(f.data, key)
	return redis.NewStringResult(value, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var deleted int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			deleted++
		}
	}
	return redis.NewIntResult(deleted, nil)
}

func (f *fakeRedis) returnToToken(t *testing.T) string {
	t.Helper()
	for key := range f.data {
		if strings.HasPrefix(key, "returnto:") {
			return strings.TrimPrefix(key, "returnto:")
		}
	}
	t.Fatal("no return-to slot stored")
	return ""
}

func requestContext(t *testing.T, target string, cookies ...*http.Cookie) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("GET", target, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	c.Request = req
	return c
}

func TestReturnToConsumedExactlyOnce(t *testing.T) {
	rdb := newFakeRedis()
	store := &SessionStore{redis: rdb, ttl: time.Hour}

	store.RememberReturnTo(requestContext(t, "/v1/campgrounds/abc"), "/campgrounds/abc")
	cookie := &http.Cookie{Name: returnToCookie, Value: rdb.returnToToken(t)}

	if got := store.ConsumeReturnTo(requestContext(t, "/v1/auth", cookie)); got != "/campgrounds/abc" {
		t.Fatalf("first consume = %q, want the remembered path", got)
	}
	if got := store.ConsumeReturnTo(requestContext(t, "/v1/auth", cookie)); got != "" {
		t.Fatalf("second consume = %q, want empty slot", got)
	}
	if len(rdb.data) != 0 {
		t.Fatalf("slot survived consumption: %v", rdb.data)
	}
}

func TestReturnToHoldsSingleDestination(t *testing.T) {
	rdb := newFakeRedis()
	store := &SessionStore{redis: rdb, ttl: time.Hour}

	store.RememberReturnTo(requestContext(t, "/v1/campgrounds/abc"), "/campgrounds/abc")
	cookie := &http.Cookie{Name: returnToCookie, Value: rdb.returnToToken(t)}

	store.RememberReturnTo(requestContext(t, "/v1/campgrounds/xyz", cookie), "/campgrounds/xyz")
	if len(rdb.data) != 1 {
		t.Fatalf("expected one slot, got %v", rdb.data)
	}

	if got := store.ConsumeReturnTo(requestContext(t, "/v1/auth", cookie)); got != "/campgrounds/xyz" {
		t.Fatalf("consume = %q, want the latest path", got)
	}
}

func TestReturnToIgnoresNonLocalPaths(t *testing.T) {
	rdb := newFakeRedis()
	store := &SessionStore{redis: rdb, ttl: time.Hour}

	store.RememberReturnTo(requestContext(t, "/v1/campgrounds"), "")
	store.RememberReturnTo(requestContext(t, "/v1/campgrounds"), "https://evil.example/phish")

	if len(rdb.data) != 0 {
		t.Fatalf("non-local destination was stored: %v", rdb.data)
	}
}

func TestConsumeReturnToWithoutCookieIsEmpty(t *testing.T) {
	store := &SessionStore{redis: newFakeRedis(), ttl: time.Hour}

	if got := store.ConsumeReturnTo(requestContext(t, "/v1/auth")); got != "" {
		t.Fatalf("consume without cookie = %q, want empty", got)
	}
}
