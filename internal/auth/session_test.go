package auth

import (
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserSessionBinaryRoundTrip(t *testing.T) {
	original := UserSession{
		ExpiresAt: time.Now().Add(time.Hour).Truncate(time.Second),
		UserId:    primitive.NewObjectID(),
		Username:  "sam",
	}

	data, err := original.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary returned error: %v", err)
	}

	var decoded UserSession
	if err := decoded.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary returned error: %v", err)
	}

	if decoded.UserId != original.UserId || decoded.Username != original.Username {
		t.Fatalf("round trip lost fields: %+v", decoded)
	}
	if !decoded.ExpiresAt.Equal(original.ExpiresAt) {
		t.Fatalf("expiry changed: %v vs %v", decoded.ExpiresAt, original.ExpiresAt)
	}
}

func TestSessionStoreSetGetClear(t *testing.T) {
	store := &SessionStore{redis: newFakeRedis(), ttl: time.Hour}
	userID := primitive.NewObjectID()

	key, err := store.Set(requestContext(t, "/v1/auth"), userID, "sam")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	cookie := &http.Cookie{Name: SessionCookie, Value: key}

	session, err := store.Get(requestContext(t, "/v1/me", cookie))
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if session.UserId != userID || session.Username != "sam" {
		t.Fatalf("wrong principal loaded: %+v", session)
	}

	if err := store.Clear(requestContext(t, "/v1/logout", cookie)); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, err := store.Get(requestContext(t, "/v1/me", cookie)); err != ErrNoSession {
		t.Fatalf("cleared session still resolves: %v", err)
	}
}

func TestSessionStoreRejectsExpiredSession(t *testing.T) {
	store := &SessionStore{redis: newFakeRedis(), ttl: -time.Minute}
	key, err := store.Set(requestContext(t, "/v1/auth"), primitive.NewObjectID(), "sam")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	cookie := &http.Cookie{Name: SessionCookie, Value: key}
	if _, err := store.Get(requestContext(t, "/v1/me", cookie)); err != ErrNoSession {
		t.Fatalf("expired session still resolves: %v", err)
	}
}

func TestUserSessionExpired(t *testing.T) {
	live := UserSession{ExpiresAt: time.Now().Add(time.Minute)}
	if live.Expired() {
		t.Fatal("future session reported expired")
	}

	stale := UserSession{ExpiresAt: time.Now().Add(-time.Minute)}
	if !stale.Expired() {
		t.Fatal("past session reported live")
	}
}
