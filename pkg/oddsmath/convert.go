package oddsmath

import (
	"math"
	"strconv"
	"strings"
)

// MarketKey identifica o mercado canônico, usado tanto como parâmetro na API
// externa quanto como chave de dispatch interna.
type MarketKey string

const (
	MarketH2H     MarketKey = "h2h"
	MarketSpreads MarketKey = "spreads"
	MarketTotals  MarketKey = "totals"
)

// Conversion agrupa as formas derivadas de uma odd americana.
type Conversion struct {
	Decimal    float64 // multiplicador de retorno, 4 casas
	ImpliedPct float64 // probabilidade implícita em %, 2 casas
}

// FromAmerican converte odd americana para decimal e probabilidade implícita.
// Zero ou valor não finito não é computável (ok=false) — não é erro.
// Ex.: +150 → 2.5 / 40.00%; -150 → 1.6667 / 60.00%.
func FromAmerican(v float64) (Conversion, bool) {
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return Conversion{}, false
	}

	var dec, pct float64
	if v > 0 {
		dec = 1 + v/100
		pct = 100 / (v + 100) * 100
	} else {
		abs := math.Abs(v)
		dec = 1 + 100/abs
		pct = abs / (abs + 100) * 100
	}

	return Conversion{
		Decimal:    round(dec, 4),
		ImpliedPct: round(pct, 2),
	}, true
}

// ParseAmerican interpreta uma odd americana em forma de string ("120", "-150").
func ParseAmerican(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(s, "+"), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NormalizeMarket classifica o nome de mercado informado pelo usuário em uma
// das chaves canônicas. Qualquer valor não reconhecido (inclusive vazio) cai
// em h2h.
func NormalizeMarket(s string) MarketKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ml", "moneyline", "h2h":
		return MarketH2H
	case "spread", "spreads", "ats":
		return MarketSpreads
	case "total", "totals", "o/u", "ou":
		return MarketTotals
	default:
		return MarketH2H
	}
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
