package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/electricbuddy/charger-service/internal/models"
)

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OSRMProvider is a keyless routing provider: addresses are resolved through
// OpenStreetMap's Nominatim API and routes fetched from the public OSRM
// demo server. Both services have fair-use rate limits; for production volume
// self-host them or use the Google provider.
type OSRMProvider struct {
	client     HTTPClient
	geocodeURL string // Nominatim search endpoint
	routeURL   string // OSRM route service base
	log        *slog.Logger
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// NewOSRMProvider creates a provider against the public Nominatim and OSRM
// endpoints with a default request timeout.
func NewOSRMProvider(log *slog.Logger) *OSRMProvider {
	const timeout = 10 * time.Second
	return &OSRMProvider{
		client:     &http.Client{Timeout: timeout},
		geocodeURL: "https://nominatim.openstreetmap.org/search",
		routeURL:   "https://router.project-osrm.org/route/v1/driving",
		log:        log,
		userAgent:  "charger-service/1.0 (https://github.com/electricbuddy/charger-service)",
	}
}

// NewOSRMProviderWithClient creates a provider with custom endpoints and HTTP
// client. Useful for testing against httptest servers.
func NewOSRMProviderWithClient(client HTTPClient, geocodeURL, routeURL string, log *slog.Logger) *OSRMProvider {
	return &OSRMProvider{
		client:     client,
		geocodeURL: geocodeURL,
		routeURL:   routeURL,
		log:        log,
		userAgent:  "charger-service/1.0 (https://github.com/electricbuddy/charger-service)",
	}
}

// nominatimResult is one entry of the Nominatim search response.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode converts an address to a coordinate using Nominatim.
func (op *OSRMProvider) Geocode(ctx context.Context, address string) (*models.GeoCoordinate, error) {
	op.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	reqURL, err := url.Parse(op.geocodeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse geocode URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode request: %w", err)
	}
	req.Header.Set("User-Agent", op.userAgent)

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("nominatim returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedAddress, address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid latitude %q: %w", results[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim returned invalid longitude %q: %w", results[0].Lon, err)
	}

	return &models.GeoCoordinate{Latitude: lat, Longitude: lng}, nil
}

// osrmResponse is the subset of the OSRM route response the provider reads.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lng, lat] pairs
		} `json:"geometry"`
	} `json:"routes"`
}

// Route resolves both endpoints and fetches a driving route from OSRM,
// requesting the full GeoJSON geometry.
func (op *OSRMProvider) Route(ctx context.Context, origin, destination string) ([]models.RoutePoint, error) {
	from, err := op.resolve(ctx, origin)
	if err != nil {
		return nil, err
	}
	to, err := op.resolve(ctx, destination)
	if err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		op.routeURL, from.Longitude, from.Latitude, to.Longitude, to.Latitude)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create route request: %w", err)
	}
	req.Header.Set("User-Agent", op.userAgent)

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute route request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("osrm returned status %d: %s", resp.StatusCode, string(body))
	}

	var result osrmResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode osrm response: %w", err)
	}
	if result.Code != "Ok" || len(result.Routes) == 0 {
		return nil, fmt.Errorf("%w: osrm code %q", ErrNoRoute, result.Code)
	}

	coords := result.Routes[0].Geometry.Coordinates
	points := make([]models.RoutePoint, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			continue
		}
		points = append(points, models.RoutePoint{Lat: pair[1], Lng: pair[0]})
	}
	if len(points) == 0 {
		return nil, ErrNoRoute
	}

	op.log.DebugContext(ctx, "Route fetched", "points", len(points))
	return points, nil
}

// resolve turns an endpoint into a coordinate, geocoding free-text addresses.
func (op *OSRMProvider) resolve(ctx context.Context, endpoint string) (*models.GeoCoordinate, error) {
	if coord, ok := ParseLatLng(endpoint); ok {
		return &coord, nil
	}
	return op.Geocode(ctx, endpoint)
}
