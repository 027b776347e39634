// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the portal.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string

	// PostgresDSN selects the backing store. Empty means the in-memory
	// store, which is only suitable for development.
	PostgresDSN string

	// JWTSecret signs and verifies bearer tokens. Required.
	JWTSecret string

	// AdminUsername and AdminPassword are the fallback administrator
	// credential used when no database is configured.
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:          getenv("LAYANAN_ADDR", ":8080"),
		PostgresDSN:   strings.TrimSpace(os.Getenv("LAYANAN_PG_DSN")),
		JWTSecret:     strings.TrimSpace(os.Getenv("LAYANAN_JWT_SECRET")),
		AdminUsername: strings.TrimSpace(os.Getenv("LAYANAN_ADMIN_USERNAME")),
		AdminPassword: os.Getenv("LAYANAN_ADMIN_PASSWORD"),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
