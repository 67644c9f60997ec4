package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-derived setting for both the server and
// worker binaries. Load never exits the process — callers decide how to
// react to a missing or malformed setting.
type Config struct {
	DatabaseURL    string
	DBConnTimeout  time.Duration
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnLifetime time.Duration
	JWTSecret      string
	ServerPort     string
	SchedulingTZ   string
	JobQueueSize   int
	JobPoolWorkers int
}

// Load reads .env (if present — its absence is not an error, since the
// process's real environment may already carry these variables in
// production) and the process environment, applying defaults for anything
// optional.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	cfg := &Config{
		DatabaseURL:    databaseURL,
		DBConnTimeout:  envDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnLifetime: envDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		JWTSecret:      jwtSecret,
		ServerPort:     envString("SERVER_PORT", "8080"),
		SchedulingTZ:   envString("SCHEDULING_TIMEZONE", "UTC"),
		JobQueueSize:   envInt("JOB_QUEUE_SIZE", 256),
		JobPoolWorkers: envInt("JOB_POOL_WORKERS", 4),
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
