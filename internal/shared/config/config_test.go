package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ENV", "SERVICE_NAME", "HTTP_PORT", "METRICS_PORT", "ODDS_API_BASE_URL", "ODDS_API_KEY", "ODDS_API_TIMEOUT_MS"} {
		t.Setenv(k, "")
	}
	// Setenv("", ...) deixa a var vazia, não ausente; getEnv devolve o valor
	// vazio nesses casos, então validamos só os campos com default aplicado
	cfg := Load()

	if cfg.OddsAPITimeout != 5*time.Second {
		t.Errorf("OddsAPITimeout = %v, want 5s", cfg.OddsAPITimeout)
	}
	if cfg.OddsAPIKey != "" {
		t.Errorf("OddsAPIKey = %q, want vazio", cfg.OddsAPIKey)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("SERVICE_NAME", "best-odds-service-2")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("ODDS_API_BASE_URL", "http://localhost:8081")
	t.Setenv("ODDS_API_KEY", "abc")
	t.Setenv("ODDS_API_TIMEOUT_MS", "2500")

	cfg := Load()

	if cfg.Env != "prod" || cfg.ServiceName != "best-odds-service-2" || cfg.HTTPPort != "9000" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.OddsAPIBaseURL != "http://localhost:8081" || cfg.OddsAPIKey != "abc" {
		t.Errorf("upstream cfg = %+v", cfg)
	}
	if cfg.OddsAPITimeout != 2500*time.Millisecond {
		t.Errorf("OddsAPITimeout = %v, want 2.5s", cfg.OddsAPITimeout)
	}
}

func TestLoadIgnoresBadTimeout(t *testing.T) {
	t.Setenv("ODDS_API_TIMEOUT_MS", "not-a-number")

	if cfg := Load(); cfg.OddsAPITimeout != 5*time.Second {
		t.Errorf("OddsAPITimeout = %v, want default 5s", cfg.OddsAPITimeout)
	}
}
