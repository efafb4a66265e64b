// Package geocode resolves free-text locations to coordinates through the
// Mapbox forward-geocoding v6 API. It is called once when a campground is
// created and again when its location is edited.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
)

const defaultBaseURL = "https://api.mapbox.com"

type Geocoder interface {
	Forward(ctx context.Context, query string) (models.Geometry, error)
}

type MapboxClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewMapboxClient(token string) *MapboxClient {
	return &MapboxClient{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// NewMapboxClientWithBase points the client at an alternate endpoint.
func NewMapboxClientWithBase(baseURL, token string) *MapboxClient {
	c := NewMapboxClient(token)
	c.baseURL = baseURL
	return c
}

type forwardResponse struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Forward resolves a free-text location to a GeoJSON point, keeping only
// the best match.
func (mc *MapboxClient) Forward(ctx context.Context, query string) (models.Geometry, error) {
	endpoint := fmt.Sprintf("%s/search/geocode/v6/forward?q=%s&limit=1&access_token=%s",
		mc.baseURL, url.QueryEscape(query), url.QueryEscape(mc.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.Geometry{}, apperr.Wrap(apperr.Upstream, err, "geocoding request failed")
	}

	resp, err := mc.httpClient.Do(req)
	if err != nil {
		return models.Geometry{}, apperr.Wrap(apperr.Upstream, err, "geocoding request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Geometry{}, apperr.Wrap(apperr.Upstream,
			errors.Errorf("mapbox returned status %d", resp.StatusCode), "geocoding request failed")
	}

	var body forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Geometry{}, apperr.Wrap(apperr.Upstream, err, "geocoding response unreadable")
	}

	if len(body.Features) == 0 || len(body.Features[0].Geometry.Coordinates) != 2 {
		return models.Geometry{}, apperr.New(apperr.Validation, "location could not be geocoded")
	}

	feature := body.Features[0].Geometry
	return models.Geometry{
		Type:        "Point",
		Coordinates: feature.Coordinates,
	}, nil
}
