package config

import (
	"os"
	"sync"
)

// Substitution keys populated by the default context mapping.
const (
	KeyDatabase         = "database"
	KeyDistrictDatabase = "districtDatabase"
)

// Config carries the process-wide defaults for SQL scenarios.
type Config struct {
	// DatabaseName is the primary test database substituted for {database}.
	DatabaseName string
	// DistrictDatabaseName is the secondary test database substituted for
	// {districtDatabase}.
	DistrictDatabaseName string
	// DSN is the connection string for live-database work (CLI, integration
	// harness). Empty when unset.
	DSN string
}

// FromEnv builds a Config from environment variables so callers stay lean.
func FromEnv() Config {
	dbName := os.Getenv("TEST_DB_NAME")
	if dbName == "" {
		dbName = "app_test"
	}
	districtName := os.Getenv("TEST_DISTRICT_DB_NAME")
	if districtName == "" {
		districtName = "district_test"
	}

	return Config{
		DatabaseName:         dbName,
		DistrictDatabaseName: districtName,
		DSN:                  os.Getenv("DATABASE_URL"),
	}
}

var (
	loadOnce sync.Once
	loaded   Config
)

// Load returns the Config computed once at first use. The result is treated
// as an immutable value for the remainder of the process.
func Load() Config {
	loadOnce.Do(func() {
		loaded = FromEnv()
	})
	return loaded
}

// ContextDefaults returns the default substitution mapping as a fresh map,
// so callers can overlay their own entries without mutating shared state.
func (c Config) ContextDefaults() map[string]string {
	return map[string]string{
		KeyDatabase:         c.DatabaseName,
		KeyDistrictDatabase: c.DistrictDatabaseName,
	}
}
