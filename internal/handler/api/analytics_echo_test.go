package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "JupLens/internal/domain/models"
	"JupLens/internal/usecase"
	xhttp "JupLens/pkg/http"
)

const (
	solMint  = "So11111111111111111111111111111111111111112"
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

type fakeSource struct{}

func (fakeSource) FetchCatalog(context.Context) (map[string]models.TokenInfo, error) {
	return map[string]models.TokenInfo{
		solMint:  {Address: solMint, Symbol: "SOL", Name: "Wrapped SOL"},
		usdcMint: {Address: usdcMint, Symbol: "USDC", Name: "USD Coin"},
	}, nil
}

type fakePrices struct{}

func (fakePrices) Price(context.Context, string) (float64, error) {
	return 0, errors.New("offline")
}

type fakeQuotes struct{}

func (fakeQuotes) Routes(context.Context, models.RouteQuery) ([]models.Route, error) {
	return []models.Route{{
		Steps: []models.RouteStep{{
			Swap: &models.SwapInfo{Label: "Orca", InputMint: usdcMint, OutputMint: solMint},
		}},
		Score: 0.99,
	}}, nil
}

func newTestHandler() *AnalyticsHandler {
	catalog := usecase.NewCatalogService(fakeSource{}, nil, nil, nil, time.Hour)
	valuer := usecase.NewValuer(fakePrices{}, nil, nil, nil, nil, 0, 0, 0)
	portfolio := usecase.NewPortfolioAnalyzer(catalog, valuer, nil, nil, nil)
	routes := usecase.NewRouteAnalyzer(fakeQuotes{}, catalog, nil, nil)
	return NewAnalyticsHandler(nil, catalog, portfolio, routes)
}

func doRequest(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, xhttp.APIResponse) {
	t.Helper()

	e := echo.New()
	newTestHandler().RegisterRoutes(e)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope xhttp.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestTokens(t *testing.T) {
	rec, envelope := doRequest(t, http.MethodGet, "/api/tokens?query=usd&limit=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, envelope.Status)

	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var tokens []models.TokenInfo
	require.NoError(t, json.Unmarshal(raw, &tokens))
	require.Len(t, tokens, 1)
	assert.Equal(t, "USDC", tokens[0].Symbol)
}

func TestPortfolio(t *testing.T) {
	t.Run("values holdings with fallback prices", func(t *testing.T) {
		body := `{"holdings":[{"mint":"` + solMint + `","amount":10},{"mint":"` + usdcMint + `","amount":0}]}`
		_, envelope := doRequest(t, http.MethodPost, "/api/portfolio", body)
		require.Equal(t, http.StatusOK, envelope.Status)

		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var analysis models.PortfolioAnalysis
		require.NoError(t, json.Unmarshal(raw, &analysis))

		// Zero-amount holding dropped; SOL priced from the fallback table.
		require.Len(t, analysis.Portfolio.Holdings, 1)
		assert.InDelta(t, 1500.0, analysis.Portfolio.TotalValue, 1e-9)
		assert.NotEqual(t, models.RiskUnknown, analysis.Risk.Level)
	})

	t.Run("empty holdings rejected", func(t *testing.T) {
		_, envelope := doRequest(t, http.MethodPost, "/api/portfolio", `{"holdings":[]}`)
		assert.Equal(t, http.StatusBadRequest, envelope.Status)
	})
}

func TestRoutes(t *testing.T) {
	t.Run("identical mints rejected", func(t *testing.T) {
		body := `{"inputMint":"` + solMint + `","outputMint":"` + solMint + `","amount":1000}`
		_, envelope := doRequest(t, http.MethodPost, "/api/routes", body)
		assert.Equal(t, http.StatusBadRequest, envelope.Status)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		body := `{"inputMint":"` + usdcMint + `","outputMint":"` + solMint + `","amount":0}`
		_, envelope := doRequest(t, http.MethodPost, "/api/routes", body)
		assert.Equal(t, http.StatusBadRequest, envelope.Status)
	})

	t.Run("full analysis", func(t *testing.T) {
		body := `{"inputMint":"` + usdcMint + `","outputMint":"` + solMint + `","amount":1000000}`
		_, envelope := doRequest(t, http.MethodPost, "/api/routes", body)
		require.Equal(t, http.StatusOK, envelope.Status)

		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		var analysis models.RouteAnalysis
		require.NoError(t, json.Unmarshal(raw, &analysis))
		require.Len(t, analysis.Routes, 1)
		assert.Equal(t, map[string]int{"Orca": 1}, analysis.Pools.DexUsage)
	})
}

func TestHealth(t *testing.T) {
	rec, envelope := doRequest(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusOK, envelope.Status)

	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}
