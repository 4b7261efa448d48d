package instance

import (
	"os"

	"github.com/angelmondragon/catalog-admin/pkg/env"
)

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	if id := env.Get("INSTANCE_ID", ""); id != "" {
		return id
	}
	if id := os.Getenv("DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
