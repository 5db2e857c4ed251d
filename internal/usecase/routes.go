package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"JupLens/internal/domain/models"
	domrepo "JupLens/internal/domain/repository"
	applogger "JupLens/pkg/logger"
)

// SummarizePools flattens a route batch into per-pool usage records and
// directional DEX/pair counters. Steps without swap info are skipped.
func SummarizePools(routes []models.Route, catalog models.Catalog) models.PoolSummary {
	s := models.PoolSummary{
		DexUsage:  make(map[string]int),
		PairUsage: make(map[string]int),
	}

	for ri, route := range routes {
		for si, step := range route.Steps {
			if step.Swap == nil {
				continue
			}

			dex := step.Swap.Label
			if dex == "" {
				dex = "Unknown"
			}
			in := catalog.Resolve(step.Swap.InputMint).Symbol
			out := catalog.Resolve(step.Swap.OutputMint).Symbol

			rec := models.PoolUsageRecord{
				RouteIndex:  ri,
				StepIndex:   si,
				Dex:         dex,
				InputToken:  in,
				OutputToken: out,
				TokenPair:   in + "-" + out,
				PriceImpact: step.ImpactPct,
				RouteScore:  route.Score,
				AmmKey:      step.Swap.AmmKey,
				LpFee:       step.Swap.LpFee,
				PlatformFee: step.Swap.PlatformFee,
			}

			s.Records = append(s.Records, rec)
			s.DexUsage[dex]++
			s.PairUsage[rec.TokenPair]++
		}
	}
	return s
}

// BuildHopGraph builds the directed multigraph of token hops. Each step
// contributes one edge weighted by absolute price impact; nodes appear in
// first-seen order.
func BuildHopGraph(routes []models.Route, catalog models.Catalog) models.HopGraph {
	g := models.HopGraph{}
	seen := make(map[string]bool)

	addNode := func(mint string) string {
		symbol := catalog.Resolve(mint).Symbol
		if !seen[symbol] {
			seen[symbol] = true
			g.Nodes = append(g.Nodes, models.HopNode{Symbol: symbol, Mint: mint})
		}
		return symbol
	}

	for ri, route := range routes {
		for si, step := range route.Steps {
			if step.Swap == nil {
				continue
			}
			from := addNode(step.Swap.InputMint)
			to := addNode(step.Swap.OutputMint)
			g.Edges = append(g.Edges, models.HopEdge{
				From:       from,
				To:         to,
				Weight:     math.Abs(step.ImpactPct),
				RouteIndex: ri,
				StepIndex:  si,
			})
		}
	}
	return g
}

// ComputeComplexity summarizes every route, including zero-step ones.
func ComputeComplexity(routes []models.Route) []models.RouteComplexity {
	out := make([]models.RouteComplexity, 0, len(routes))
	for ri, route := range routes {
		c := models.RouteComplexity{
			RouteIndex: ri,
			StepCount:  len(route.Steps),
			Score:      route.Score,
		}
		for _, step := range route.Steps {
			c.TotalImpactPct += math.Abs(step.ImpactPct)
		}
		out = append(out, c)
	}
	return out
}

// ComputeEfficiency aggregates pool quality over a summary's records.
// Ties for the most-used DEX break alphabetically for determinism.
func ComputeEfficiency(s models.PoolSummary) models.PoolEfficiency {
	if len(s.Records) == 0 {
		return models.PoolEfficiency{}
	}

	eff := models.PoolEfficiency{
		TotalPools:   len(s.Records),
		UniqueDexes:  len(s.DexUsage),
		MinImpactPct: math.Inf(1),
		MaxImpactPct: math.Inf(-1),
	}

	var impactSum, scoreSum float64
	for _, r := range s.Records {
		impactSum += r.PriceImpact
		scoreSum += r.RouteScore
		if r.PriceImpact < eff.MinImpactPct {
			eff.MinImpactPct = r.PriceImpact
		}
		if r.PriceImpact > eff.MaxImpactPct {
			eff.MaxImpactPct = r.PriceImpact
		}
	}
	eff.AvgImpactPct = impactSum / float64(len(s.Records))
	eff.AvgRouteScore = scoreSum / float64(len(s.Records))

	dexes := make([]string, 0, len(s.DexUsage))
	for dex := range s.DexUsage {
		dexes = append(dexes, dex)
	}
	sort.Strings(dexes)
	for _, dex := range dexes {
		if s.DexUsage[dex] > s.DexUsage[eff.MostUsedDex] {
			eff.MostUsedDex = dex
		}
	}
	return eff
}

// PairHeatmap folds directional pair counts into symmetric ones: "B-A"
// and "A-B" land on the same alphabetically ordered key.
func PairHeatmap(s models.PoolSummary) map[string]int {
	heat := make(map[string]int, len(s.PairUsage))
	for pair, n := range s.PairUsage {
		a, b, ok := strings.Cut(pair, "-")
		if ok && b < a {
			pair = b + "-" + a
		}
		heat[pair] += n
	}
	return heat
}

// RouteAnalyzer fetches a route batch and derives every aggregate view.
type RouteAnalyzer struct {
	quotes  domrepo.QuoteSource
	catalog *CatalogService
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewRouteAnalyzer(quotes domrepo.QuoteSource, catalog *CatalogService, metrics domrepo.Metrics, logger *applogger.Logger) *RouteAnalyzer {
	return &RouteAnalyzer{quotes: quotes, catalog: catalog, metrics: metrics, logger: logger}
}

// Analyze fetches routes for the query and summarizes them. A failed or
// malformed quote degrades to zero routes, never an error.
func (a *RouteAnalyzer) Analyze(ctx context.Context, q models.RouteQuery) models.RouteAnalysis {
	start := time.Now()

	routes, err := a.quotes.Routes(ctx, q)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("quote fetch failed, degrading to zero routes",
				applogger.String("input", models.ShortenMint(q.InputMint)),
				applogger.String("output", models.ShortenMint(q.OutputMint)),
				applogger.Error(err),
			)
		}
		if a.metrics != nil {
			a.metrics.RecordError("quote_fetch")
		}
		routes = nil
	}

	catalog := a.catalog.Snapshot(ctx)
	pools := SummarizePools(routes, catalog)

	analysis := models.RouteAnalysis{
		Routes:     routes,
		Pools:      pools,
		Efficiency: ComputeEfficiency(pools),
		Graph:      BuildHopGraph(routes, catalog),
		Complexity: ComputeComplexity(routes),
		Heatmap:    PairHeatmap(pools),
	}

	if a.metrics != nil {
		a.metrics.RecordLatency("route_analysis", time.Since(start).Seconds())
	}
	return analysis
}
