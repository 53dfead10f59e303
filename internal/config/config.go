package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI and server
const (
	EnvDB      = "TRACE_DB"            // database path
	EnvAddr    = "TRACE_ADDR"          // server listen address
	EnvSiteURL = "TRACE_SITE_URL"      // base URL of the site documents link to
	EnvNested  = "TRACE_NESTED"        // link purchase invoices/receipts under purchase orders
	EnvTopN    = "TRACE_TOP_N"         // default --top-n of stats
	EnvHubMin  = "TRACE_HUB_THRESHOLD" // default --hub-threshold of stats
	EnvDebug   = "DEBUG"
)

const (
	DefaultAddr    = ":8080"
	DefaultDBName  = ".traceability.db"
	DefaultDoctype = "Sales Order"
	DefaultTopN    = 10
	DefaultHubMin  = 5
)

// LoadEnv loads a .env file from the working directory if one exists.
// Returns false when no file was loaded.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// GetEnv returns the value of key, or "" when unset
func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

// GetEnvString returns the value of key, or defaultValue when unset
func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the integer value of key, or defaultValue when unset or
// not a number
func GetEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetEnvBool returns true/false for "true"/"false", or defaultValue
func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	if value == "true" || value == "false" {
		return value == "true"
	}
	return defaultValue
}
