package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do serviço
// Inclui portas, credenciais e timeout do fornecedor de odds
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string

	HTTPPort    string // Porta pública (API REST)
	MetricsPort string // Porta exclusiva para /metrics e /healthz

	// Fornecedor de odds (contrato v4)
	OddsAPIBaseURL string
	OddsAPIKey     string // vazio desabilita as consultas ao fornecedor, sem erro
	OddsAPITimeout time.Duration
}

// Load carrega variáveis de ambiente (e .env, se existir) e define defaults
func Load() Config {
	_ = godotenv.Load() // ignora erro se .env não existir

	cfg := Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "best-odds-service"),

		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),

		OddsAPIBaseURL: getEnv("ODDS_API_BASE_URL", "https://api.the-odds-api.com"),
		OddsAPIKey:     getEnv("ODDS_API_KEY", ""),
		OddsAPITimeout: 5 * time.Second,
	}

	if v := os.Getenv("ODDS_API_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.OddsAPITimeout = time.Duration(ms) * time.Millisecond
		}
	}

	return cfg
}

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
