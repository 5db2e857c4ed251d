package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JupLens/internal/domain/models"
)

func orcaStep(impact float64) models.RouteStep {
	return models.RouteStep{
		Swap: &models.SwapInfo{
			AmmKey:     "whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc",
			Label:      "Orca",
			InputMint:  usdcMint,
			OutputMint: solMint,
			LpFee:      0.003,
		},
		Percent:   100,
		ImpactPct: impact,
	}
}

func TestSummarizePools(t *testing.T) {
	catalog := testCatalog()

	t.Run("single step plus empty route", func(t *testing.T) {
		routes := []models.Route{
			{Steps: []models.RouteStep{orcaStep(0.01)}, Score: 0.98},
			{}, // empty route contributes nothing here
		}

		s := SummarizePools(routes, catalog)
		require.Len(t, s.Records, 1)

		rec := s.Records[0]
		assert.Equal(t, 0, rec.RouteIndex)
		assert.Equal(t, 0, rec.StepIndex)
		assert.Equal(t, "Orca", rec.Dex)
		assert.Equal(t, "USDC", rec.InputToken)
		assert.Equal(t, "SOL", rec.OutputToken)
		assert.Equal(t, "USDC-SOL", rec.TokenPair)
		assert.Equal(t, 0.01, rec.PriceImpact)
		assert.Equal(t, 0.98, rec.RouteScore)
		assert.Equal(t, 0.003, rec.LpFee)

		assert.Equal(t, map[string]int{"Orca": 1}, s.DexUsage)
		assert.Equal(t, map[string]int{"USDC-SOL": 1}, s.PairUsage)
	})

	t.Run("step without swap info is skipped", func(t *testing.T) {
		routes := []models.Route{
			{Steps: []models.RouteStep{{Percent: 100}, orcaStep(0.02)}},
		}

		s := SummarizePools(routes, catalog)
		require.Len(t, s.Records, 1)
		assert.Equal(t, 1, s.Records[0].StepIndex)
	})

	t.Run("unknown mint degrades to shortened symbol", func(t *testing.T) {
		routes := []models.Route{
			{Steps: []models.RouteStep{orcaStep(0.01)}},
		}
		s := SummarizePools(routes, models.Catalog{})
		require.Len(t, s.Records, 1)
		assert.Equal(t, "EPjFWdd5...ZwyTDt1v", s.Records[0].InputToken)
	})

	t.Run("missing dex label counts as Unknown", func(t *testing.T) {
		step := orcaStep(0.01)
		step.Swap.Label = ""
		s := SummarizePools([]models.Route{{Steps: []models.RouteStep{step}}}, catalog)
		assert.Equal(t, map[string]int{"Unknown": 1}, s.DexUsage)
	})
}

func TestBuildHopGraph(t *testing.T) {
	catalog := testCatalog()
	back := models.RouteStep{
		Swap: &models.SwapInfo{
			Label:      "Raydium",
			InputMint:  solMint,
			OutputMint: usdcMint,
		},
		ImpactPct: -0.05,
	}
	routes := []models.Route{
		{Steps: []models.RouteStep{orcaStep(0.01), back}},
		{Steps: []models.RouteStep{{Percent: 100}}}, // skipped, no swap info
	}

	g := BuildHopGraph(routes, catalog)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "USDC", g.Nodes[0].Symbol)
	assert.Equal(t, "SOL", g.Nodes[1].Symbol)

	require.Len(t, g.Edges, 2)
	assert.Equal(t, "USDC", g.Edges[0].From)
	assert.Equal(t, "SOL", g.Edges[0].To)
	assert.Equal(t, 0.01, g.Edges[0].Weight)

	// Negative impact is folded into a positive weight.
	assert.Equal(t, 0.05, g.Edges[1].Weight)
	assert.Equal(t, 0, g.Edges[1].RouteIndex)
	assert.Equal(t, 1, g.Edges[1].StepIndex)
}

func TestComputeComplexity(t *testing.T) {
	routes := []models.Route{
		{Steps: []models.RouteStep{orcaStep(0.01)}, Score: 0.97},
		{},
		{Steps: []models.RouteStep{{Percent: 100, ImpactPct: -0.02}, orcaStep(0.03)}},
	}

	cs := ComputeComplexity(routes)
	require.Len(t, cs, 3)

	assert.Equal(t, 1, cs[0].StepCount)
	assert.InDelta(t, 0.01, cs[0].TotalImpactPct, 1e-12)
	assert.Equal(t, 0.97, cs[0].Score)

	// Zero-step route still appears.
	assert.Equal(t, 0, cs[1].StepCount)
	assert.Equal(t, 0.0, cs[1].TotalImpactPct)

	// Steps without swap info still count toward complexity.
	assert.Equal(t, 2, cs[2].StepCount)
	assert.InDelta(t, 0.05, cs[2].TotalImpactPct, 1e-12)
}

func TestComputeEfficiency(t *testing.T) {
	t.Run("empty summary yields zero value", func(t *testing.T) {
		assert.Equal(t, models.PoolEfficiency{}, ComputeEfficiency(models.PoolSummary{}))
	})

	t.Run("aggregates records", func(t *testing.T) {
		s := models.PoolSummary{
			Records: []models.PoolUsageRecord{
				{Dex: "Orca", PriceImpact: 0.01, RouteScore: 0.9},
				{Dex: "Orca", PriceImpact: 0.03, RouteScore: 0.8},
				{Dex: "Raydium", PriceImpact: 0.02, RouteScore: 1.0},
			},
			DexUsage: map[string]int{"Orca": 2, "Raydium": 1},
		}

		eff := ComputeEfficiency(s)
		assert.Equal(t, 3, eff.TotalPools)
		assert.Equal(t, 2, eff.UniqueDexes)
		assert.InDelta(t, 0.02, eff.AvgImpactPct, 1e-12)
		assert.Equal(t, 0.01, eff.MinImpactPct)
		assert.Equal(t, 0.03, eff.MaxImpactPct)
		assert.Equal(t, "Orca", eff.MostUsedDex)
		assert.InDelta(t, 0.9, eff.AvgRouteScore, 1e-12)
	})
}

func TestPairHeatmap_FoldsDirections(t *testing.T) {
	s := models.PoolSummary{
		PairUsage: map[string]int{
			"USDC-SOL":  2,
			"SOL-USDC":  1,
			"BONK-USDC": 1,
		},
	}

	heat := PairHeatmap(s)
	assert.Equal(t, map[string]int{
		"SOL-USDC":  3,
		"BONK-USDC": 1,
	}, heat)
}

type stubQuotes struct {
	routes []models.Route
	err    error
}

func (s *stubQuotes) Routes(_ context.Context, _ models.RouteQuery) ([]models.Route, error) {
	return s.routes, s.err
}

func TestRouteAnalyzer_DegradesToZeroRoutes(t *testing.T) {
	catalog := NewCatalogService(&stubCatalogSource{tokens: testCatalog().Tokens}, nil, nil, nil, time.Hour)
	analyzer := NewRouteAnalyzer(&stubQuotes{err: errors.New("quote api down")}, catalog, nil, nil)

	res := analyzer.Analyze(context.Background(), models.RouteQuery{
		InputMint:  usdcMint,
		OutputMint: solMint,
		Amount:     1_000_000,
	})

	assert.Empty(t, res.Routes)
	assert.Empty(t, res.Pools.Records)
	assert.Empty(t, res.Complexity)
	assert.Equal(t, models.PoolEfficiency{}, res.Efficiency)
}

func TestRouteAnalyzer_FullAnalysis(t *testing.T) {
	catalog := NewCatalogService(&stubCatalogSource{tokens: testCatalog().Tokens}, nil, nil, nil, time.Hour)
	quotes := &stubQuotes{routes: []models.Route{
		{Steps: []models.RouteStep{orcaStep(0.01)}, Score: 0.99},
	}}
	analyzer := NewRouteAnalyzer(quotes, catalog, nil, nil)

	res := analyzer.Analyze(context.Background(), models.RouteQuery{
		InputMint:  usdcMint,
		OutputMint: solMint,
		Amount:     1_000_000,
	})

	require.Len(t, res.Routes, 1)
	assert.Len(t, res.Pools.Records, 1)
	assert.Equal(t, 1, res.Efficiency.TotalPools)
	assert.Len(t, res.Graph.Edges, 1)
	require.Len(t, res.Complexity, 1)
	assert.Equal(t, 1, res.Complexity[0].StepCount)
	assert.Equal(t, map[string]int{"SOL-USDC": 1}, res.Heatmap)
}
