// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every knob the process needs. It is built once at startup and
// handed to components explicitly; nothing reads the environment after Load
// returns.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	ServerAddr      string
	AllowedOrigins  []string
	LogLevel        string
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

func splitenv(key, def string) []string {
	raw := getenv(key, def)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Load collects configuration from the environment with defaults.
func Load() Config {
	return Config{
		DatabaseURL:     getenv("DATABASE_URL", ""),
		JWTSecret:       getenv("JWT_SECRET", ""),
		ServerAddr:      getenv("SERVER_ADDR", ":8000"),
		AllowedOrigins:  splitenv("ALLOWED_ORIGINS", "http://localhost:3000"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 10),
	}
}
