package selection

import (
	"math"
	"strings"

	"github.com/radieske/best-odds-service/pkg/contracts/oddsapi"
	"github.com/radieske/best-odds-service/pkg/oddsmath"
)

// Criteria reúne os critérios de seleção vindos da requisição.
type Criteria struct {
	Team        string
	Side        string   // "over"/"under" (só totals)
	SpreadPoint *float64 // linha alvo para spreads
	TotalPoint  *float64 // linha alvo para totals
}

// Pick escolhe o outcome que melhor atende aos critérios dentro do mercado.
// Retorna nil quando não há outcomes ou nenhum passa no filtro.
// Não modifica a slice recebida.
func Pick(market oddsmath.MarketKey, outcomes []oddsapi.Outcome, c Criteria) *oddsapi.Outcome {
	if len(outcomes) == 0 {
		return nil
	}

	switch market {
	case oddsmath.MarketH2H:
		if c.Team != "" {
			for i := range outcomes {
				if strings.EqualFold(outcomes[i].Name, c.Team) {
					return &outcomes[i]
				}
			}
		}
		// sem time informado (ou sem match exato), fica o primeiro na ordem do fornecedor
		return &outcomes[0]

	case oddsmath.MarketSpreads:
		return nearestByName(outcomes, c.Team, c.SpreadPoint)

	case oddsmath.MarketTotals:
		side := "Over"
		if strings.HasPrefix(strings.ToLower(c.Side), "u") {
			side = "Under"
		}
		return nearestByName(outcomes, side, c.TotalPoint)
	}

	return &outcomes[0]
}

// nearestByName filtra por nome (case-insensitive) e devolve o outcome de
// ponto mais próximo do alvo. Sem alvo, ou sem nenhum ponto finito no filtro,
// devolve o primeiro filtrado. Empate fica com o primeiro encontrado.
func nearestByName(outcomes []oddsapi.Outcome, name string, target *float64) *oddsapi.Outcome {
	var filtered []*oddsapi.Outcome
	for i := range outcomes {
		if strings.EqualFold(outcomes[i].Name, name) {
			filtered = append(filtered, &outcomes[i])
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if target == nil {
		return filtered[0]
	}

	best := filtered[0]
	bestDist := math.Inf(1)
	for _, o := range filtered {
		if o.Point == nil || math.IsNaN(*o.Point) {
			continue
		}
		if d := math.Abs(*o.Point - *target); d < bestDist {
			best = o
			bestDist = d
		}
	}
	return best
}
