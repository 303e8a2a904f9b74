package config

import (
	"os"
	"strings"
)

func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the listen address, ":8080" unless APP_PORT is set.
func Port() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	if port[0] != ':' {
		return ":" + port
	}
	return port
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// AllowedOrigins lists the CORS_ALLOWED_ORIGINS entries. Empty means any
// origin.
func AllowedOrigins() []string {
	return splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
}
