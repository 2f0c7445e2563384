package config

import "os"

// Config carries the process settings read from the environment. Defaults
// suit local development; production overrides them through .env or real
// environment variables.
type Config struct {
	Port    string
	DataDir string
	GinMode string
}

func Load() Config {
	return Config{
		Port:    getenv("PORT", "8080"),
		DataDir: getenv("DATA_DIR", "restaurant_data"),
		GinMode: os.Getenv("GIN_MODE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
