package fetcher

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/internal/best-odds/selection"
	"github.com/radieske/best-odds-service/pkg/contracts/oddsapi"
	"github.com/radieske/best-odds-service/pkg/oddsmath"
)

// Métricas Prometheus do caminho de rede
var (
	upstreamRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bestodds_upstream_requests_total",
		Help: "chamadas ao fornecedor de odds",
	})
	upstreamErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bestodds_upstream_errors_total",
		Help: "falhas do fornecedor por estágio",
	}, []string{"stage"})
)

// Collectors expõe os contadores do fetcher pra registro no main.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{upstreamRequests, upstreamErrors}
}

// BookProvided é o sentinel usado quando o melhor preço veio da linha
// informada pelo caller, não de um bookmaker real.
const BookProvided = "provided"

// Status distingue internamente como o resultado foi obtido. A resposta HTTP
// colapsa tudo na mesma forma; a distinção existe pra log, métrica e teste.
type Status string

const (
	StatusMatched       Status = "matched"        // melhor preço veio de um bookmaker
	StatusSeedOnly      Status = "seed_only"      // só a linha informada pelo caller
	StatusEmpty         Status = "empty"          // nada encontrado
	StatusUpstreamError Status = "upstream_error" // fornecedor falhou; resultado degradado
)

// Request são os parâmetros de busca já validados pela camada HTTP.
type Request struct {
	SportKey    string
	Market      string // nome cru, normalizado aqui
	Team        string
	Side        string
	SpreadPoint *float64
	TotalPoint  *float64
	Books       []string
	Line        string // odd americana opcional usada como seed
}

// BestPrice é o melhor preço corrente durante a varredura dos bookmakers.
type BestPrice struct {
	Book        string
	American    string
	Decimal     float64
	ImpliedPct  float64
	PickedPoint *float64 // linha do outcome escolhido, não a pedida
}

// Result é o resultado tipado de uma busca.
type Result struct {
	Market oddsmath.MarketKey
	Status Status
	Best   *BestPrice
}

// Better decide se o candidato substitui o melhor preço corrente.
type Better func(candidate, current BestPrice) bool

// HighestDecimal é a política padrão: maior multiplicador de retorno ganha.
func HighestDecimal(candidate, current BestPrice) bool {
	return candidate.Decimal > current.Decimal
}

// OddsClient é a dependência de rede do fetcher.
type OddsClient interface {
	FetchOdds(ctx context.Context, sportKey string, market oddsmath.MarketKey, books []string) ([]oddsapi.Event, error)
}

// Fetcher orquestra uma consulta ao fornecedor e a escolha do melhor preço.
// Config explícita na construção; nada é lido de estado global.
type Fetcher struct {
	BaseURL string
	APIKey  string
	Client  OddsClient
	Log     *zap.Logger
	Rank    Better // nil usa HighestDecimal
}

func New(baseURL, apiKey string, client OddsClient, log *zap.Logger) *Fetcher {
	return &Fetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  client,
		Log:     log,
		Rank:    HighestDecimal,
	}
}

// FetchBest normaliza o mercado, semeia o melhor preço com a linha do caller
// (se houver), consulta o fornecedor quando elegível e varre os bookmakers do
// evento escolhido. Falha de rede ou payload inválido é absorvida: loga e
// devolve o que já tinha.
func (f *Fetcher) FetchBest(ctx context.Context, req Request) Result {
	market := oddsmath.NormalizeMarket(req.Market)
	res := Result{Market: market, Status: StatusEmpty}

	if req.Line != "" {
		if v, ok := oddsmath.ParseAmerican(req.Line); ok {
			if conv, ok := oddsmath.FromAmerican(v); ok {
				res.Best = &BestPrice{
					Book:       BookProvided,
					American:   formatAmerican(v),
					Decimal:    conv.Decimal,
					ImpliedPct: conv.ImpliedPct,
				}
				res.Status = StatusSeedOnly
			}
		}
	}

	// sem credenciais ou parâmetros suficientes, não consulta o fornecedor
	if f.BaseURL == "" || f.APIKey == "" || req.SportKey == "" || len(req.Books) == 0 {
		return res
	}

	upstreamRequests.Inc()
	events, err := f.Client.FetchOdds(ctx, req.SportKey, market, req.Books)
	if err != nil {
		upstreamErrors.WithLabelValues("fetch").Inc()
		f.Log.Warn("odds api call failed",
			zap.String("sport_key", req.SportKey),
			zap.Error(err),
		)
		res.Status = StatusUpstreamError
		return res
	}
	if len(events) == 0 {
		// lista vazia mantém o que já estava semeado
		return res
	}

	event := pickEvent(events, req.Team)
	crit := selection.Criteria{
		Team:        req.Team,
		Side:        req.Side,
		SpreadPoint: req.SpreadPoint,
		TotalPoint:  req.TotalPoint,
	}

	for i := range event.Bookmakers {
		bm := &event.Bookmakers[i]
		mk := findMarket(bm.Markets, market)
		if mk == nil {
			continue
		}
		out := selection.Pick(market, mk.Outcomes, crit)
		if out == nil {
			continue
		}
		conv, ok := oddsmath.FromAmerican(out.Price.Float64())
		if !ok {
			continue
		}
		cand := BestPrice{
			Book:        bm.Key,
			American:    formatAmerican(out.Price.Float64()),
			Decimal:     conv.Decimal,
			ImpliedPct:  conv.ImpliedPct,
			PickedPoint: out.Point,
		}
		if res.Best == nil || f.rank()(cand, *res.Best) {
			b := cand
			res.Best = &b
			res.Status = StatusMatched
		}
	}

	return res
}

func (f *Fetcher) rank() Better {
	if f.Rank != nil {
		return f.Rank
	}
	return HighestDecimal
}

// pickEvent procura o primeiro evento cujo mandante ou visitante contenha o
// time pedido (substring, case-insensitive); sem time ou sem match, o primeiro.
func pickEvent(events []oddsapi.Event, team string) *oddsapi.Event {
	if team != "" {
		t := strings.ToLower(team)
		for i := range events {
			if strings.Contains(strings.ToLower(events[i].HomeTeam), t) ||
				strings.Contains(strings.ToLower(events[i].AwayTeam), t) {
				return &events[i]
			}
		}
	}
	return &events[0]
}

func findMarket(markets []oddsapi.Market, key oddsmath.MarketKey) *oddsapi.Market {
	for i := range markets {
		if strings.EqualFold(markets[i].Key, string(key)) {
			return &markets[i]
		}
	}
	return nil
}

func formatAmerican(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
