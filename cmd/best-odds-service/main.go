package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/internal/best-odds/fetcher"
	httpapi "github.com/radieske/best-odds-service/internal/best-odds/http"
	"github.com/radieske/best-odds-service/internal/best-odds/upstream"
	"github.com/radieske/best-odds-service/internal/shared/config"
	"github.com/radieske/best-odds-service/internal/shared/logger"
	"github.com/radieske/best-odds-service/internal/shared/metrics"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))
	if cfg.OddsAPIKey == "" {
		// sem chave o serviço segue no ar, só não consulta o fornecedor
		log.Warn("ODDS_API_KEY not set; upstream lookups disabled")
	}

	client := upstream.New(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, cfg.OddsAPITimeout, log)
	f := fetcher.New(cfg.OddsAPIBaseURL, cfg.OddsAPIKey, client, log)

	api := &httpapi.API{Fetcher: f, Log: log, Service: cfg.ServiceName}

	prometheus.MustRegister(append(fetcher.Collectors(), httpapi.Collectors()...)...)

	// sobe servidor de métricas e health em porta separada
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil // sem dependências críticas pra pingar
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	go func() {
		log.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	_ = metricsSrv.Shutdown(ctx)
}
