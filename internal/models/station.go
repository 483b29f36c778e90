package models

// Connector status values as reported by the charger-search provider.
const (
	StatusAvailable = "Available"
	StatusOccupied  = "Occupied"
	StatusUnknown   = "Unknown"
)

// Charging levels. L2 is the default when the source data omits the level.
const (
	LevelL2 = "L2"
	LevelL3 = "L3"
)

// ConnectorPort describes a physical plug on a connector.
type ConnectorPort struct {
	Type      string `json:"type"`
	PowerType string `json:"powerType"`
	Power     int    `json:"power"`
}

// Connector is a single charge point within a station. Its identifier is
// unique within the parent station only. Connectors are owned by their parent
// and are replaced wholesale whenever the parent station is upserted.
type Connector struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Status        string          `json:"status"`
	Level         string          `json:"level"`
	ChargingSpeed float64         `json:"chargingSpeed"`
	FreeOfCharge  bool            `json:"freeOfCharge"`
	Ports         []ConnectorPort `json:"connectors,omitempty"`
}

// Station is a charging park: a physical location containing one or more
// connectors. The JSON shape mirrors the charger-search provider payload,
// which nests connectors under the key "stations".
type Station struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	GeoCoordinates GeoCoordinate `json:"geoCoordinates"`
	NetworkID      int           `json:"networkId,omitempty"`
	Address        string        `json:"address,omitempty"`
	LastUpdated    int64         `json:"lastUpdated,omitempty"` // epoch milliseconds
	Connectors     []Connector   `json:"stations"`
}

// Normalize fills in the documented defaults for fields the source data may
// omit: status Unknown, level L2, charging speed 0. It is applied at the
// ingestion boundary before a station is persisted.
func (s *Station) Normalize() {
	for i := range s.Connectors {
		c := &s.Connectors[i]
		if c.Status == "" {
			c.Status = StatusUnknown
		}
		if c.Level == "" {
			c.Level = LevelL2
		}
		if c.ChargingSpeed < 0 {
			c.ChargingSpeed = 0
		}
	}
}

// StationWithDistance associates a station with its computed distance from a
// query point.
type StationWithDistance struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}
