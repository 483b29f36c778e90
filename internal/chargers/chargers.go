// Package chargers implements the route-proximity filter and the derived
// charger scoring filters (charging speed, battery damage, environmental
// score).
package chargers

import (
	"github.com/electricbuddy/charger-service/internal/geo"
	"github.com/electricbuddy/charger-service/internal/models"
)

// Charger is a single charge point flattened together with the fields of its
// parent station that the filters need.
type Charger struct {
	StationID          string               `json:"stationId"`
	StationName        string               `json:"stationName"`
	Name               string               `json:"name"`
	GeoCoordinates     models.GeoCoordinate `json:"geoCoordinates"`
	NetworkID          int                  `json:"networkId"`
	Status             string               `json:"status"`
	Level              string               `json:"level"`
	ChargingSpeed      float64              `json:"chargingSpeed"`
	FreeOfCharge       bool                 `json:"freeOfCharge"`
	BatteryDamage      float64              `json:"batteryDamage"`
	EnvironmentalScore int                  `json:"environmentalScore"`
}

// StationsNearRoute returns the stations that lie within maxDistanceKm of at
// least one route point. The first matching route point qualifies a station;
// there is no nearest-point or cumulative scoring. Stations with out-of-range
// coordinates are skipped, not errored.
//
// Complexity is O(stations x routePoints), which is fine for the single-digit
// thousands both collections stay at.
func StationsNearRoute(route []models.RoutePoint, stations []models.Station, maxDistanceKm float64) []models.Station {
	var near []models.Station
	for _, station := range stations {
		if !station.GeoCoordinates.Valid() {
			continue
		}
		for _, point := range route {
			distance := geo.DistanceKm(station.GeoCoordinates, models.GeoCoordinate{
				Latitude:  point.Lat,
				Longitude: point.Lng,
			})
			if distance <= maxDistanceKm {
				near = append(near, station)
				break
			}
		}
	}
	return near
}

// Flatten expands stations into per-connector charger records, applying the
// ingestion defaults and precomputing the derived scores.
func Flatten(stations []models.Station) []Charger {
	var result []Charger
	for _, station := range stations {
		for _, conn := range station.Connectors {
			charger := Charger{
				StationID:      station.ID,
				StationName:    station.Name,
				Name:           conn.Name,
				GeoCoordinates: station.GeoCoordinates,
				NetworkID:      station.NetworkID,
				Status:         conn.Status,
				Level:          conn.Level,
				ChargingSpeed:  conn.ChargingSpeed,
				FreeOfCharge:   conn.FreeOfCharge,
			}
			if charger.Status == "" {
				charger.Status = models.StatusUnknown
			}
			if charger.Level == "" {
				charger.Level = models.LevelL2
			}
			charger.BatteryDamage = BatteryDamage(charger)
			charger.EnvironmentalScore = EnvironmentalScore(charger)
			result = append(result, charger)
		}
	}
	return result
}

// BatteryDamage is a heuristic score: chargingSpeed x 0.2 for L3 connectors,
// x 0.1 otherwise. It is illustrative scoring, not a physical model.
func BatteryDamage(c Charger) float64 {
	if c.Level == models.LevelL3 {
		return c.ChargingSpeed * 0.2
	}
	return c.ChargingSpeed * 0.1
}

// greenNetworks are the network identifiers credited with the higher
// environmental score.
var greenNetworks = map[int]bool{1: true, 10: true}

// EnvironmentalScore is a heuristic lookup keyed by network identifier.
// Unrecognized networks get the baseline score.
func EnvironmentalScore(c Charger) int {
	if greenNetworks[c.NetworkID] {
		return 8
	}
	return 5
}

// FilterBySpeed keeps chargers with a charging speed of at least minSpeed kW.
func FilterBySpeed(cs []Charger, minSpeed float64) []Charger {
	var kept []Charger
	for _, c := range cs {
		if c.ChargingSpeed >= minSpeed {
			kept = append(kept, c)
		}
	}
	return kept
}

// FilterByBatteryDamage keeps chargers whose battery-damage score does not
// exceed maxDamage.
func FilterByBatteryDamage(cs []Charger, maxDamage float64) []Charger {
	var kept []Charger
	for _, c := range cs {
		if BatteryDamage(c) <= maxDamage {
			kept = append(kept, c)
		}
	}
	return kept
}

// FilterByEnvironmentalScore keeps chargers whose environmental score is at
// least minScore.
func FilterByEnvironmentalScore(cs []Charger, minScore int) []Charger {
	var kept []Charger
	for _, c := range cs {
		if EnvironmentalScore(c) >= minScore {
			kept = append(kept, c)
		}
	}
	return kept
}
