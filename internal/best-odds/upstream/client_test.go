package upstream

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/radieske/best-odds-service/pkg/oddsmath"
)

const fixture = `[
  {
    "id": "abc123",
    "sport_key": "americanfootball_nfl",
    "home_team": "Kansas City Chiefs",
    "away_team": "Buffalo Bills",
    "bookmakers": [
      {
        "key": "draftkings",
        "title": "DraftKings",
        "markets": [
          {
            "key": "h2h",
            "outcomes": [
              {"name": "Kansas City Chiefs", "price": -150},
              {"name": "Buffalo Bills", "price": "130"}
            ]
          },
          {
            "key": "spreads",
            "outcomes": [
              {"name": "Kansas City Chiefs", "point": -2.5, "price": -110}
            ]
          }
        ]
      }
    ]
  }
]`

func TestFetchOdds(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("X-Requests-Remaining", "499")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fixture))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", 2*time.Second, zap.NewNop())

	events, err := c.FetchOdds(context.Background(), "americanfootball_nfl", oddsmath.MarketH2H, []string{"draftkings", "fanduel"})
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}

	if gotPath != "/v4/sports/americanfootball_nfl/odds/" {
		t.Errorf("path = %q", gotPath)
	}
	want := map[string]string{
		"regions":    "us",
		"markets":    "h2h",
		"oddsFormat": "american",
		"bookmakers": "draftkings,fanduel",
		"apiKey":     "test-key",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.HomeTeam != "Kansas City Chiefs" || ev.AwayTeam != "Buffalo Bills" {
		t.Errorf("teams = %q x %q", ev.HomeTeam, ev.AwayTeam)
	}

	outcomes := ev.Bookmakers[0].Markets[0].Outcomes
	// preço numérico e preço string decodificam igual
	if outcomes[0].Price.Float64() != -150 {
		t.Errorf("price numérico = %v, want -150", outcomes[0].Price)
	}
	if outcomes[1].Price.Float64() != 130 {
		t.Errorf("price string = %v, want 130", outcomes[1].Price)
	}

	point := ev.Bookmakers[0].Markets[1].Outcomes[0].Point
	if point == nil || *point != -2.5 {
		t.Errorf("point = %v, want -2.5", point)
	}
}

func TestFetchOddsNonOKStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := New(ts.URL, "bad-key", 2*time.Second, zap.NewNop())

	if _, err := c.FetchOdds(context.Background(), "americanfootball_nfl", oddsmath.MarketH2H, []string{"draftkings"}); err == nil {
		t.Fatal("FetchOdds com 401 deveria falhar")
	}
}

func TestFetchOddsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", 2*time.Second, zap.NewNop())

	if _, err := c.FetchOdds(context.Background(), "americanfootball_nfl", oddsmath.MarketH2H, []string{"draftkings"}); err == nil {
		t.Fatal("FetchOdds com payload inválido deveria falhar")
	}
}

func TestFetchOddsInvalidPriceBecomesNaN(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"home_team":"A","away_team":"B","bookmakers":[{"key":"dk","markets":[{"key":"h2h","outcomes":[{"name":"A","price":"oops"}]}]}]}]`))
	}))
	defer ts.Close()

	c := New(ts.URL, "test-key", 2*time.Second, zap.NewNop())

	events, err := c.FetchOdds(context.Background(), "x", oddsmath.MarketH2H, []string{"dk"})
	if err != nil {
		t.Fatalf("FetchOdds: %v", err)
	}
	price := events[0].Bookmakers[0].Markets[0].Outcomes[0].Price.Float64()
	if !math.IsNaN(price) {
		t.Errorf("price inválido = %v, want NaN", price)
	}
}
