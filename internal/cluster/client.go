// Package cluster talks to the clustered charger-search provider and expands
// map clusters into discrete charging parks.
package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/electricbuddy/charger-service/internal/models"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Cluster is a provider-side aggregation of nearby parks, returned instead of
// individual parks when the requested zoom level is too coarse.
type Cluster struct {
	GeoCoordinates models.GeoCoordinate `json:"geoCoordinates"`
	Count          int                  `json:"count"`
}

// SearchResponse is the provider's answer for one bounds+zoom query.
type SearchResponse struct {
	Parks    []models.Station `json:"parks"`
	Clusters []Cluster        `json:"clusters"`
}

// Searcher is the subset of the search provider the expander depends on.
type Searcher interface {
	Search(ctx context.Context, bounds models.BoundingBox, zoom int) (*SearchResponse, error)
}

// Client queries the charger-search provider's marker-search endpoint.
type Client struct {
	client HTTPClient
	url    string
	log    *slog.Logger
}

// NewClient creates a search client for the given endpoint URL with a default
// request timeout.
func NewClient(url string, log *slog.Logger) *Client {
	const timeout = 30 * time.Second
	return &Client{
		client: &http.Client{Timeout: timeout},
		url:    url,
		log:    log,
	}
}

// NewClientWithHTTP creates a search client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTP(client HTTPClient, url string, log *slog.Logger) *Client {
	return &Client{client: client, url: url, log: log}
}

// searchRequest is the provider's query payload. The filter envelope is sent
// with empty values; filtering happens in-process after ingestion.
type searchRequest struct {
	ZoomLevel int          `json:"zoomLevel"`
	Bounds    searchBounds `json:"bounds"`
	Filter    searchFilter `json:"filter"`
}

type searchBounds struct {
	SouthWest models.GeoCoordinate `json:"southWest"`
	NorthEast models.GeoCoordinate `json:"northEast"`
}

type searchFilter struct {
	NetworkIDs       []int    `json:"networkIds"`
	Connectors       []string `json:"connectors"`
	Levels           []int    `json:"levels"`
	Rates            []int    `json:"rates"`
	Statuses         []int    `json:"statuses"`
	MinChargingSpeed *float64 `json:"minChargingSpeed"`
	MaxChargingSpeed *float64 `json:"maxChargingSpeed"`
}

// Search queries the provider for the parks and clusters inside bounds at the
// given zoom level.
func (c *Client) Search(ctx context.Context, bounds models.BoundingBox, zoom int) (*SearchResponse, error) {
	payload := searchRequest{
		ZoomLevel: zoom,
		Bounds:    searchBounds{SouthWest: bounds.SouthWest, NorthEast: bounds.NorthEast},
		Filter: searchFilter{
			NetworkIDs: []int{},
			Levels:     []int{},
			Rates:      []int{},
			Statuses:   []int{},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.DebugContext(ctx, "Querying charger search provider", "zoom", zoom,
		"sw", bounds.SouthWest, "ne", bounds.NorthEast)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Charger search provider error", "status", resp.StatusCode, "body", string(respBody))
		return nil, fmt.Errorf("charger search returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SearchResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return &result, nil
}
