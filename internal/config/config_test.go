package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Neutralize anything inherited from the test process environment;
	// empty values read as unset.
	for _, key := range []string{"PORT", "HTTP_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "CIRCUIT_BREAKER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.HTTPTimeout)
	}
	if cfg.RateLimitRPS != 0 {
		t.Errorf("expected rate limiting disabled by default, got %v", cfg.RateLimitRPS)
	}
	if cfg.CircuitBreaker {
		t.Error("expected circuit breaker disabled by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "10s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("CIRCUIT_BREAKER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.HTTPTimeout)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Errorf("expected rate limit 2.5 rps, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 5 {
		t.Errorf("expected burst 5, got %d", cfg.RateLimitBurst)
	}
	if !cfg.CircuitBreaker {
		t.Error("expected circuit breaker enabled")
	}
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid HTTP_TIMEOUT")
	}
}
