package oddsapi

import (
	"math"
	"strconv"
	"strings"
)

// Event representa um evento esportivo retornado pelo agregador de odds (contrato v4)
type Event struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Bookmaker representa uma casa de apostas dentro de um evento
type Bookmaker struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []Market `json:"markets"`
}

// Market representa um mercado (h2h, spreads, totals) ofertado por um bookmaker
type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

// Outcome representa uma seleção dentro de um mercado.
// Point só existe em spreads/totals.
type Outcome struct {
	Name  string   `json:"name"`
	Point *float64 `json:"point,omitempty"`
	Price Price    `json:"price"`
}

// Price é a odd americana da seleção. Alguns fornecedores serializam como
// número, outros como string; payload inválido vira NaN em vez de erro,
// pra não derrubar o decode do evento inteiro.
type Price float64

func (p *Price) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*p = Price(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = Price(math.NaN())
		return nil
	}
	*p = Price(f)
	return nil
}

func (p Price) Float64() float64 { return float64(p) }
