package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all server settings.
type AppConfig struct {
	// Port is used by the HTTP transport only.
	Port string

	// HTTPTimeout bounds each outbound Open-Meteo request.
	HTTPTimeout time.Duration

	// Client-side rate limiting of outbound calls. 0 disables it.
	RateLimitRPS   float64
	RateLimitBurst int

	// CircuitBreaker wraps outbound calls in a breaker when true.
	CircuitBreaker bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.RateLimitRPS = getenvFloat("RATE_LIMIT_RPS", 0)
	cfg.RateLimitBurst = getenvInt("RATE_LIMIT_BURST", 1)
	cfg.CircuitBreaker = getenvBool("CIRCUIT_BREAKER", false)

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
