package app

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/electricbuddy/charger-service/internal/models"
	"github.com/electricbuddy/charger-service/internal/repository"
	"github.com/electricbuddy/charger-service/internal/routing"
	"github.com/electricbuddy/charger-service/internal/service"
)

// rootHandler responds with service metadata and the endpoint listing.
func (app *Application) rootHandler(w http.ResponseWriter, _ *http.Request) {
	app.writeJSON(w, http.StatusOK, map[string]any{
		"message": "Welcome to the EV Charging Station Finder API!",
		"version": app.Version,
		"endpoints": map[string]string{
			"/stations":           "Get stations within a given radius (params: lat, lon, radius_km)",
			"/station/{id}":       "Get details for a specific charge point by ID",
			"/chargers-on-route":  "Get chargers near a driving route (params: origin, destination, max_distance, min_speed, max_damage, min_score)",
			"/parent-stations":    "Get all stations with nested charge points",
			"/find_parks":         "POST a bounding box to ingest charging parks",
			"/data/{id}":          "Raw read (GET) or replace (PUT) of a station record",
		},
	})
}

// connectorSummary is the trimmed connector view nested in radius responses.
type connectorSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Level        string `json:"level"`
	FreeOfCharge bool   `json:"freeOfCharge"`
}

// stationWithinRadius is one entry of the /stations response.
type stationWithinRadius struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	GeoCoordinates models.GeoCoordinate `json:"geoCoordinates"`
	DistanceKm     float64              `json:"distance_km"`
	Stations       []connectorSummary   `json:"stations"`
}

// stationsHandler handles GET /stations?lat&lon&radius_km.
func (app *Application) stationsHandler(w http.ResponseWriter, r *http.Request) {
	lat, err := requiredFloatParam(r, "lat")
	if err != nil {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	lon, err := requiredFloatParam(r, "lon")
	if err != nil {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	radiusKm, err := optionalFloatParam(r, "radius_km", service.DefaultMaxDistanceKm)
	if err != nil {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	center := models.GeoCoordinate{Latitude: lat, Longitude: lon}
	if !center.Valid() {
		app.writeError(w, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	within, err := app.Finder.StationsWithinRadius(r.Context(), center, radiusKm)
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if len(within) == 0 {
		app.writeError(w, http.StatusNotFound, "no charging stations found within the given radius")
		return
	}

	result := make([]stationWithinRadius, 0, len(within))
	for _, entry := range within {
		station := stationWithinRadius{
			ID:             entry.ID,
			Name:           entry.Name,
			GeoCoordinates: entry.GeoCoordinates,
			DistanceKm:     math.Round(entry.DistanceKm*100) / 100,
			Stations:       make([]connectorSummary, 0, len(entry.Connectors)),
		}
		for _, conn := range entry.Connectors {
			station.Stations = append(station.Stations, connectorSummary{
				ID:           conn.ID,
				Name:         conn.Name,
				Status:       conn.Status,
				Level:        conn.Level,
				FreeOfCharge: conn.FreeOfCharge,
			})
		}
		result = append(result, station)
	}

	app.writeJSON(w, http.StatusOK, map[string]any{"stations": result})
}

// stationHandler handles GET /station/:id: a single charge point looked up by
// its connector id, returned with its parent station context.
func (app *Application) stationHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	parent, connector, err := app.Finder.ConnectorByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		app.writeError(w, http.StatusNotFound, "charging station not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, map[string]any{
		"parent_id":      parent.ID,
		"parent_name":    parent.Name,
		"geoCoordinates": parent.GeoCoordinates,
		"station":        connector,
	})
}

// chargersOnRouteHandler handles GET /chargers-on-route.
func (app *Application) chargersOnRouteHandler(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	if origin == "" || destination == "" {
		app.writeError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}

	maxDistance, err := optionalFloatParam(r, "max_distance", service.DefaultMaxDistanceKm)
	if err != nil {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters := service.ChargerFilters{MaxDistanceKm: maxDistance}

	if raw := r.URL.Query().Get("min_speed"); raw != "" {
		value, errParse := strconv.ParseFloat(raw, 64)
		if errParse != nil {
			app.writeError(w, http.StatusBadRequest, "invalid min_speed")
			return
		}
		filters.MinSpeed = &value
	}
	if raw := r.URL.Query().Get("max_damage"); raw != "" {
		value, errParse := strconv.ParseFloat(raw, 64)
		if errParse != nil {
			app.writeError(w, http.StatusBadRequest, "invalid max_damage")
			return
		}
		filters.MaxDamage = &value
	}
	if raw := r.URL.Query().Get("min_score"); raw != "" {
		value, errParse := strconv.Atoi(raw)
		if errParse != nil {
			app.writeError(w, http.StatusBadRequest, "invalid min_score")
			return
		}
		filters.MinScore = &value
	}

	result, err := app.Finder.ChargersOnRoute(r.Context(), origin, destination, filters)
	if errors.Is(err, routing.ErrUnresolvedAddress) {
		app.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		app.Logger.Error("route lookup failed", "error", err, "origin", origin, "destination", destination)
		app.writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if len(result.Chargers) == 0 {
		app.writeError(w, http.StatusNotFound, "no chargers found along the route")
		return
	}

	app.writeJSON(w, http.StatusOK, map[string]any{
		"route":    result.Route,
		"chargers": result.Chargers,
	})
}

// parentStationsHandler handles GET /parent-stations.
func (app *Application) parentStationsHandler(w http.ResponseWriter, r *http.Request) {
	stations, err := app.Finder.AllStations(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	if stations == nil {
		stations = []models.Station{}
	}

	app.writeJSON(w, http.StatusOK, map[string]any{"stations": stations})
}

// findParksRequest is the POST /find_parks body.
type findParksRequest struct {
	Bounds models.BoundingBox `json:"bounds"`
}

// findParksHandler handles POST /find_parks: triggers cluster-expansion
// ingestion over the supplied bounding box.
func (app *Application) findParksHandler(w http.ResponseWriter, r *http.Request) {
	var input findParksRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !input.Bounds.Valid() {
		app.writeError(w, http.StatusBadRequest, "invalid bounds")
		return
	}

	result, err := app.Ingest.FindParks(r.Context(), input.Bounds)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, result)
}

// dataGetHandler handles GET /data/:id: the raw station document.
func (app *Application) dataGetHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	station, err := app.Finder.StationByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		app.writeError(w, http.StatusNotFound, "station not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, station)
}

// dataPutHandler handles PUT /data/:id: replaces an existing station record.
// It never creates a new one.
func (app *Application) dataPutHandler(w http.ResponseWriter, r *http.Request) {
	id := httprouter.ParamsFromContext(r.Context()).ByName("id")

	var station models.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		app.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if station.ID != "" && station.ID != id {
		app.writeError(w, http.StatusBadRequest, "body id does not match path id")
		return
	}

	updated, err := app.Finder.ReplaceStation(r.Context(), id, station)
	if errors.Is(err, repository.ErrNotFound) {
		app.writeError(w, http.StatusNotFound, "station not found")
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	app.writeJSON(w, http.StatusOK, updated)
}

// healthzHandler reports liveness, including a database ping.
func (app *Application) healthzHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.DB.Ping(r.Context()); err != nil {
		app.writeError(w, http.StatusServiceUnavailable, "DB ping failed")
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": app.Version})
}

// serverError logs an unexpected failure and replies 500.
func (app *Application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	app.writeError(w, http.StatusInternalServerError, err.Error())
}

// requiredFloatParam parses a mandatory float query parameter.
func requiredFloatParam(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.New(name + " is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}

// optionalFloatParam parses an optional float query parameter with a default.
func optionalFloatParam(r *http.Request, name string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.New("invalid " + name)
	}
	return value, nil
}
