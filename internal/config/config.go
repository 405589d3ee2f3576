package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries the service configuration, read from environment variables
// with development defaults. A .env file in the working directory is loaded
// first when present.
type Config struct {
	HTTP struct {
		Addr string
	}
	CORS struct {
		AllowedOrigin string
	}
	Auth struct {
		JWTSecret string
	}
	Catalog struct {
		SeedURL string // empty means use the built-in seed
	}
	Valkey struct {
		Enabled  bool
		Addr     string
		Password string
		TTL      time.Duration // 0 keeps snapshots until deleted
	}
	Postgres struct {
		Enabled bool
		DSN     string
	}
}

func Load() *Config {
	// Missing .env is the normal case outside local dev.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.CORS.AllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", "http://127.0.0.1:5173")
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.Catalog.SeedURL = getEnv("CATALOG_SEED_URL", "")

	cfg.Valkey.Enabled = getEnv("VALKEY_ENABLED", "false") == "true"
	cfg.Valkey.Addr = getEnv("VALKEY_ADDR", "localhost:6379")
	cfg.Valkey.Password = getEnv("VALKEY_PASSWORD", "")
	cfg.Valkey.TTL = time.Duration(parseInt(getEnv("VALKEY_TTL_SECONDS", "0"), 0)) * time.Second

	cfg.Postgres.Enabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Postgres.DSN = getEnv("DB_DSN",
		"host=localhost port=5432 user=postgres password=postgres dbname=decorvista sslmode=disable")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
