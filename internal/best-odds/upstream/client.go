package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/pkg/contracts/oddsapi"
	"github.com/radieske/best-odds-service/pkg/oddsmath"
)

// Client consulta o endpoint de odds do agregador (contrato v4).
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     *zap.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

// FetchOdds busca os eventos com odds de um esporte, restrito aos bookmakers
// pedidos. Região fixa "us", formato americano.
func (c *Client) FetchOdds(ctx context.Context, sportKey string, market oddsmath.MarketKey, books []string) ([]oddsapi.Event, error) {
	endpoint := fmt.Sprintf("%s/v4/sports/%s/odds/", c.BaseURL, url.PathEscape(sportKey))

	params := url.Values{}
	params.Set("regions", "us")
	params.Set("markets", string(market))
	params.Set("oddsFormat", "american")
	params.Set("bookmakers", strings.Join(books, ","))
	params.Set("apiKey", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch odds: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("odds api http %d", res.StatusCode)
	}

	// cota de requisições do fornecedor, útil pra acompanhar consumo
	if remaining := res.Header.Get("X-Requests-Remaining"); remaining != "" {
		c.Log.Debug("odds api quota",
			zap.String("remaining", remaining),
			zap.String("used", res.Header.Get("X-Requests-Used")),
		)
	}

	var events []oddsapi.Event
	if err := json.NewDecoder(res.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode odds response: %w", err)
	}
	return events, nil
}
