package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/internal/best-odds/dto"
	"github.com/radieske/best-odds-service/internal/best-odds/fetcher"
	"github.com/radieske/best-odds-service/pkg/oddsmath"
)

var requestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "bestodds_requests_total",
	Help: "requisições recebidas em /odds",
})

// Collectors expõe os contadores da camada HTTP pra registro no main.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{requestsTotal}
}

// API expõe o endpoint REST de melhor preço
type API struct {
	Fetcher *fetcher.Fetcher
	Log     *zap.Logger
	Service string
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.recoverer)
	r.Get("/", a.health)      // health check
	r.Get("/odds", a.getOdds) // melhor preço entre os bookmakers pedidos
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// recoverer converte panic inesperado em 500 com a mensagem do erro
func (a *API) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.Log.Error("handler panic", zap.Any("panic", rec))
				writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: fmt.Sprint(rec)})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.HealthResponse{OK: true, Service: a.Service})
}

// getOdds valida os parâmetros, delega ao fetcher e monta a resposta final
func (a *API) getOdds(w http.ResponseWriter, r *http.Request) {
	requestsTotal.Inc()

	q := r.URL.Query()
	sportKey := q.Get("sportKey")
	if sportKey == "" {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: "sportKey is required"})
		return
	}

	req := fetcher.Request{
		SportKey:    sportKey,
		Market:      q.Get("market"),
		Team:        q.Get("team"),
		Side:        q.Get("side"),
		SpreadPoint: parsePoint(q.Get("spreadPoint")),
		TotalPoint:  parsePoint(q.Get("totalPoint")),
		Books:       splitBooks(q.Get("books")),
		Line:        q.Get("line"),
	}

	res := a.Fetcher.FetchBest(r.Context(), req)

	writeJSON(w, http.StatusOK, dto.OddsResponse{OK: true, Result: buildResult(res)})
}

// buildResult monta o mapa final; vazio quando nenhum preço foi determinado.
// Point só aparece em mercados com linha (spreads/totals) e quando houve match.
func buildResult(res fetcher.Result) map[string]any {
	if res.Best == nil {
		return map[string]any{}
	}
	out := map[string]any{
		"Market":    string(res.Market),
		"Book":      res.Best.Book,
		"Odds":      res.Best.American,
		"Decimal":   res.Best.Decimal,
		"Implied %": fmt.Sprintf("%.2f%%", res.Best.ImpliedPct),
	}
	if res.Market != oddsmath.MarketH2H && res.Best.PickedPoint != nil {
		out["Point"] = *res.Best.PickedPoint
	}
	return out
}

func parsePoint(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func splitBooks(s string) []string {
	var books []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			books = append(books, b)
		}
	}
	return books
}
