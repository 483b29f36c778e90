package routing

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of routing provider.
type ProviderType string

const (
	// ProviderTypeGoogle uses the Google Maps Geocoding and Directions APIs.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOSRM uses Nominatim for geocoding and OSRM for routing.
	ProviderTypeOSRM ProviderType = "osrm"
)

// ProviderConfig holds configuration for creating a routing provider.
type ProviderConfig struct {
	Type   ProviderType // Type of provider to create
	APIKey string       // API key (required by the Google provider)
	Logger *slog.Logger // Logger for the provider
}

// NewProvider creates a routing provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Geocoding + Directions (requires API key)
// - "osrm": Nominatim + OSRM public services (free, no API key required)
//
// Returns an error if the provider type is unsupported or creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOSRM:
		return NewOSRMProvider(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
