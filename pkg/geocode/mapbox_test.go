package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"campwild-api-io/api/pkg/apperr"
)

func TestForwardReturnsBestMatch(t *testing.T) {
	var gotQuery, gotLimit, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotToken = r.URL.Query().Get("access_token")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"geometry":{"type":"Point","coordinates":[-121.3153,44.0582]}}]}`))
	}))
	defer server.Close()

	client := NewMapboxClientWithBase(server.URL, "test-token")
	geometry, err := client.Forward(context.Background(), "Bend, Oregon")
	if err != nil {
		t.Fatalf("Forward returned error: %v", err)
	}

	if gotQuery != "Bend, Oregon" {
		t.Fatalf("query param = %q", gotQuery)
	}
	if gotLimit != "1" {
		t.Fatalf("limit param = %q", gotLimit)
	}
	if gotToken != "test-token" {
		t.Fatalf("access_token param = %q", gotToken)
	}
	if geometry.Type != "Point" {
		t.Fatalf("geometry type = %q", geometry.Type)
	}
	if geometry.Coordinates[0] != -121.3153 || geometry.Coordinates[1] != 44.0582 {
		t.Fatalf("coordinates = %v", geometry.Coordinates)
	}
}

func TestForwardNoFeaturesIsValidation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	client := NewMapboxClientWithBase(server.URL, "test-token")
	_, err := client.Forward(context.Background(), "nowhere at all")
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestForwardUpstreamFailureIsUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewMapboxClientWithBase(server.URL, "test-token")
	_, err := client.Forward(context.Background(), "Bend, Oregon")
	if apperr.KindOf(err) != apperr.Upstream {
		t.Fatalf("expected Upstream, got %v", err)
	}
}

func TestForwardUnreachableHostIsUpstream(t *testing.T) {
	client := NewMapboxClientWithBase("http://127.0.0.1:1", "test-token")
	_, err := client.Forward(context.Background(), "Bend, Oregon")
	if apperr.KindOf(err) != apperr.Upstream {
		t.Fatalf("expected Upstream, got %v", err)
	}
}
