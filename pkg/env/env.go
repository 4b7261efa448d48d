package env

import (
	"os"
	"strings"
)

// Prefix namespaces catalog-admin variables.
const Prefix = "CATALOG_"

// Get returns CATALOG_<key>, then <key>, then the fallback.
func Get(key, fallback string) string {
	key = strings.TrimPrefix(key, Prefix)
	if val := strings.TrimSpace(os.Getenv(Prefix + key)); val != "" {
		return val
	}
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
