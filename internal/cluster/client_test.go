package cluster_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/electricbuddy/charger-service/internal/cluster"
)

func TestClientSearch(t *testing.T) {
	logger := slog.Default()
	area := bounds(43.0, -80.0, 44.0, -79.0)

	t.Run("successful search decodes parks and clusters", func(t *testing.T) {
		var captured map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"parks": [{"id": "p1", "name": "Park One", "geoCoordinates": {"latitude": 43.5, "longitude": -79.5}, "stations": []}],
				"clusters": [{"geoCoordinates": {"latitude": 43.2, "longitude": -79.2}, "count": 12}]
			}`))
		}))
		defer server.Close()

		client := cluster.NewClient(server.URL, logger)
		resp, err := client.Search(t.Context(), area, 14)

		require.NoError(t, err)
		require.Len(t, resp.Parks, 1)
		require.Len(t, resp.Clusters, 1)
		assert.Equal(t, "p1", resp.Parks[0].ID)
		assert.Equal(t, 12, resp.Clusters[0].Count)

		// The provider payload carries the zoom, the bounds, and an empty
		// filter envelope.
		assert.InEpsilon(t, 14.0, captured["zoomLevel"], 1e-9)
		payloadBounds, ok := captured["bounds"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, payloadBounds, "southWest")
		assert.Contains(t, payloadBounds, "northEast")
		filter, ok := captured["filter"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, filter, "networkIds")
		assert.Nil(t, filter["minChargingSpeed"])
	})

	t.Run("non-200 status is an error including the status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := cluster.NewClient(server.URL, logger)
		resp, err := client.Search(t.Context(), area, 14)

		require.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := cluster.NewClient(server.URL, logger)
		_, err := client.Search(t.Context(), area, 14)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}
