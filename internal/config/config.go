package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the charger service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The HTTP API server port.
// - RouteProvider: Which routing provider to use (google, osrm).
// - APIKey: The API key for the routing provider (required for Google).
// - SearchURL: The clustered charger-search endpoint.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env           string         // Env is the current environment: local, development, production.
	Port          int            // Port is the API server port.
	RouteProvider string         // RouteProvider specifies which routing provider to use.
	APIKey        string         // The API key for the routing provider.
	SearchURL     string         // SearchURL is the charger-search provider endpoint.
	Database      PostgresConfig // Database holds the postgres database configuration.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// defaultSearchURL is the charger-search provider the original deployment
// ingests from.
const defaultSearchURL = "https://emobility.flo.ca/v3.0/map/markers/search"

// MustLoad loads the configuration from the environment (with optional .env
// file) and panics on unparsable values.
func MustLoad() *Config {
	_ = godotenv.Load()

	port, err := strconv.Atoi(setDefaultEnv("CHARGER_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	return &Config{
		Env:           setDefaultEnv("CHARGER_ENV", "production"),
		Port:          port,
		RouteProvider: setDefaultEnv("CHARGER_ROUTE_PROVIDER", "google"),
		APIKey:        os.Getenv("CHARGER_ROUTE_API_KEY"),
		SearchURL:     setDefaultEnv("CHARGER_SEARCH_URL", defaultSearchURL),
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
