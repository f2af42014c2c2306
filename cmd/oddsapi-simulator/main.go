package main

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/internal/shared/config"
	"github.com/radieske/best-odds-service/internal/shared/logger"
	"github.com/radieske/best-odds-service/internal/shared/metrics"
	"github.com/radieske/best-odds-service/pkg/contracts/oddsapi"
)

// Catálogo fixo de partidas simuladas para geração de odds
type matchup struct {
	id         string
	home, away string
	spread     float64 // linha base do mandante
	total      float64 // linha base de pontos
}

var (
	gameCatalog = []matchup{
		{id: "SIM_001", home: "Kansas City Chiefs", away: "Buffalo Bills", spread: -2.5, total: 48.5},
		{id: "SIM_002", home: "Philadelphia Eagles", away: "Dallas Cowboys", spread: -3.5, total: 45.5},
		{id: "SIM_003", home: "San Francisco 49ers", away: "Detroit Lions", spread: -1.5, total: 51.5},
		{id: "SIM_004", home: "Baltimore Ravens", away: "Cincinnati Bengals", spread: -4.5, total: 46.5},
	}

	bookCatalog = []string{"draftkings", "fanduel", "betmgm", "caesars"}

	// Métricas Prometheus para acompanhar uso do mock
	oddsRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_odds_requests_total",
		Help: "Requisições atendidas em /v4/sports/{sportKey}/odds/",
	})
	eventsServed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_events_served_total",
		Help: "Total de eventos devolvidos",
	})
)

// odd americana plausível pro favorito (negativa) e pro azarão (positiva)
func favPrice() oddsapi.Price { return oddsapi.Price(-float64(rand.Intn(90) + 110)) }
func dogPrice() oddsapi.Price { return oddsapi.Price(float64(rand.Intn(90) + 100)) }

// preço típico de linha (spread/total), sempre perto de -110
func linePrice() oddsapi.Price { return oddsapi.Price(-float64(rand.Intn(16) + 100)) }

func ptr(v float64) *float64 { return &v }

// buildMarkets monta os mercados pedidos com preços e linhas levemente
// diferentes por bookmaker, pra dar variação de melhor preço entre casas.
func buildMarkets(m matchup, requested map[string]bool) []oddsapi.Market {
	var markets []oddsapi.Market

	if requested["h2h"] {
		markets = append(markets, oddsapi.Market{
			Key: "h2h",
			Outcomes: []oddsapi.Outcome{
				{Name: m.home, Price: favPrice()},
				{Name: m.away, Price: dogPrice()},
			},
		})
	}

	if requested["spreads"] {
		line := m.spread + float64(rand.Intn(3)-1)*0.5
		markets = append(markets, oddsapi.Market{
			Key: "spreads",
			Outcomes: []oddsapi.Outcome{
				{Name: m.home, Point: ptr(line), Price: linePrice()},
				{Name: m.away, Point: ptr(-line), Price: linePrice()},
			},
		})
	}

	if requested["totals"] {
		line := m.total + float64(rand.Intn(3)-1)*0.5
		markets = append(markets, oddsapi.Market{
			Key: "totals",
			Outcomes: []oddsapi.Outcome{
				{Name: "Over", Point: ptr(line), Price: linePrice()},
				{Name: "Under", Point: ptr(line), Price: linePrice()},
			},
		})
	}

	return markets
}

func main() {
	cfg := config.Load()
	log, err := logger.New("oddsapi-simulator", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(oddsRequests, eventsServed)

	r := chi.NewRouter()

	// mesma rota do fornecedor real, pra apontar ODDS_API_BASE_URL direto aqui
	r.Get("/v4/sports/{sportKey}/odds/", func(w http.ResponseWriter, req *http.Request) {
		oddsRequests.Inc()

		q := req.URL.Query()

		requested := map[string]bool{}
		marketsParam := q.Get("markets")
		if marketsParam == "" {
			marketsParam = "h2h,spreads,totals"
		}
		for _, m := range strings.Split(marketsParam, ",") {
			requested[strings.TrimSpace(strings.ToLower(m))] = true
		}

		books := bookCatalog
		if bs := q.Get("bookmakers"); bs != "" {
			books = nil
			allowed := map[string]bool{}
			for _, b := range strings.Split(bs, ",") {
				allowed[strings.TrimSpace(strings.ToLower(b))] = true
			}
			for _, b := range bookCatalog {
				if allowed[b] {
					books = append(books, b)
				}
			}
		}

		sportKey := chi.URLParam(req, "sportKey")
		now := time.Now().UTC().Format(time.RFC3339)

		events := make([]oddsapi.Event, 0, len(gameCatalog))
		for _, m := range gameCatalog {
			ev := oddsapi.Event{
				ID:           m.id,
				SportKey:     sportKey,
				SportTitle:   "NFL",
				CommenceTime: now,
				HomeTeam:     m.home,
				AwayTeam:     m.away,
			}
			for _, b := range books {
				ev.Bookmakers = append(ev.Bookmakers, oddsapi.Bookmaker{
					Key:        b,
					Title:      strings.Title(b),
					LastUpdate: now,
					Markets:    buildMarkets(m, requested),
				})
			}
			events = append(events, ev)
			eventsServed.Inc()
		}

		// headers de cota imitando o fornecedor real
		w.Header().Set("X-Requests-Remaining", "499")
		w.Header().Set("X-Requests-Used", "1")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(events)
	})

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	addr := ":" + cfg.HTTPPort
	log.Info("oddsapi-simulator listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil && err != http.ErrServerClosed {
		log.Fatal("simulator failed", zap.Error(err))
	}
}
