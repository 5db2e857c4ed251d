package jupiter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"JupLens/internal/domain/models"
	xhttp "JupLens/pkg/http"
	applogger "JupLens/pkg/logger"
	"JupLens/pkg/util"
)

// Client talks to the Jupiter public APIs: token list, price and quote.
type Client struct {
	tokenListURL string
	priceURL     string
	quoteURL     string
	http         *xhttp.Client
	logger       *applogger.Logger
}

// Option configures Client.
type Option func(*Client)

// NewClient creates a Jupiter API client.
func NewClient(tokenListURL, priceURL, quoteURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		tokenListURL: tokenListURL,
		priceURL:     priceURL,
		quoteURL:     quoteURL,
		http:         xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithLogger attaches a logger for skipped-record diagnostics.
func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// FetchCatalog downloads the full token list keyed by mint address.
// Records without an address are skipped; other missing fields default to zero.
func (c *Client) FetchCatalog(ctx context.Context) (map[string]models.TokenInfo, error) {
	var records []tokenRecord
	if err := c.http.GetJSON(ctx, c.tokenListURL, nil, &records); err != nil {
		return nil, fmt.Errorf("fetch token list: %w", err)
	}

	tokens := make(map[string]models.TokenInfo, len(records))
	skipped := 0
	for _, r := range records {
		if r.Address == "" {
			skipped++
			continue
		}
		tokens[r.Address] = models.TokenInfo{
			Address:  r.Address,
			Symbol:   r.Symbol,
			Name:     r.Name,
			Decimals: r.Decimals,
			LogoURI:  r.LogoURI,
			Tags:     r.Tags,
		}
	}
	if skipped > 0 && c.logger != nil {
		c.logger.Warn("token list records skipped", applogger.Int("count", skipped))
	}
	return tokens, nil
}

// Price looks up the USD price for a single mint.
// Returns 0 with a nil error when the API has no data for the mint.
func (c *Client) Price(ctx context.Context, mint string) (float64, error) {
	var resp priceResponse
	err := c.http.GetJSON(ctx, c.priceURL, map[string][]string{"ids": {mint}}, &resp)
	if err != nil {
		return 0, fmt.Errorf("fetch price %s: %w", models.ShortenMint(mint), err)
	}
	entry, ok := resp.Data[mint]
	if !ok {
		return 0, nil
	}
	return entry.Price, nil
}

// Routes fetches candidate swap routes for a query. A quote with a single
// routePlan maps to one route; legacy payloads with a routes array map to
// one route each. Steps without swap info are kept as nil-pool steps.
func (c *Client) Routes(ctx context.Context, q models.RouteQuery) ([]models.Route, error) {
	query := map[string][]string{
		"inputMint":   {q.InputMint},
		"outputMint":  {q.OutputMint},
		"amount":      {strconv.FormatInt(q.Amount, 10)},
		"slippageBps": {strconv.Itoa(q.SlippageBps)},
	}

	var resp quoteResponse
	if err := c.http.GetJSON(ctx, c.quoteURL, query, &resp); err != nil {
		return nil, fmt.Errorf("fetch quote: %w", err)
	}

	if len(resp.Routes) > 0 {
		routes := make([]models.Route, 0, len(resp.Routes))
		for _, lr := range resp.Routes {
			routes = append(routes, mapRoute(lr.MarketInfos, lr.InAmount, lr.OutAmount, lr.PriceImpactPct, lr.Score))
		}
		return routes, nil
	}

	if len(resp.RoutePlan) == 0 {
		return nil, nil
	}
	return []models.Route{mapRoute(resp.RoutePlan, resp.InAmount, resp.OutAmount, resp.PriceImpactPct, 0)}, nil
}

func mapRoute(steps []routePlanStep, inAmount, outAmount, impactPct string, score float64) models.Route {
	impact := util.ParseFloatDefault(impactPct, 0)
	out := util.ParseFloatDefault(outAmount, 0)

	if score == 0 {
		if in := util.ParseFloatDefault(inAmount, 0); in > 0 && out > 0 {
			score = out / in
		}
	}

	r := models.Route{
		OutAmount:      out,
		PriceImpactPct: impact,
		Score:          score,
		Steps:          make([]models.RouteStep, 0, len(steps)),
	}

	for _, s := range steps {
		step := models.RouteStep{Percent: s.Percent, ImpactPct: impact}
		if s.SwapInfo != nil {
			si := &models.SwapInfo{
				AmmKey:     s.SwapInfo.AmmKey,
				Label:      s.SwapInfo.Label,
				InputMint:  s.SwapInfo.InputMint,
				OutputMint: s.SwapInfo.OutputMint,
			}
			if s.SwapInfo.LpFee != nil {
				si.LpFee = s.SwapInfo.LpFee.Pct
			}
			if s.SwapInfo.PlatformFee != nil {
				si.PlatformFee = s.SwapInfo.PlatformFee.Pct
			}
			if s.SwapInfo.PriceImpactPct != "" {
				step.ImpactPct = util.ParseFloatDefault(s.SwapInfo.PriceImpactPct, impact)
			}
			step.Swap = si
		}
		r.Steps = append(r.Steps, step)
	}
	return r
}
