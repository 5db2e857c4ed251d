package models

// SwapInfo describes the pool a single route step swaps through.
type SwapInfo struct {
	AmmKey      string  `json:"ammKey"`
	Label       string  `json:"label"`
	InputMint   string  `json:"inputMint"`
	OutputMint  string  `json:"outputMint"`
	LpFee       float64 `json:"lpFee"`
	PlatformFee float64 `json:"platformFee"`
}

// RouteStep is one hop of a swap route. Swap is nil when the aggregator
// returned a step without pool information; such steps are skipped by
// every aggregate except route complexity.
type RouteStep struct {
	Swap    *SwapInfo `json:"swap"`
	Percent int       `json:"percent"`
	// ImpactPct falls back to the route-level price impact when the
	// source does not report impact per step.
	ImpactPct float64 `json:"impactPct"`
}

// Route is one candidate path returned by the quote API.
type Route struct {
	Steps          []RouteStep `json:"steps"`
	OutAmount      float64     `json:"outAmount"`
	PriceImpactPct float64     `json:"priceImpactPct"`
	Score          float64     `json:"score"`
}

// PoolUsageRecord is one flattened (route, step) pool observation.
type PoolUsageRecord struct {
	RouteIndex  int    `json:"routeIndex"`
	StepIndex   int    `json:"stepIndex"`
	Dex         string `json:"dex"`
	InputToken  string `json:"inputToken"`
	OutputToken string `json:"outputToken"`
	// TokenPair is directional, "IN-OUT".
	TokenPair   string  `json:"tokenPair"`
	PriceImpact float64 `json:"priceImpact"`
	RouteScore  float64 `json:"routeScore"`
	AmmKey      string  `json:"ammKey"`
	LpFee       float64 `json:"lpFee"`
	PlatformFee float64 `json:"platformFee"`
}

// PoolSummary is the flattened pool usage across a route batch.
type PoolSummary struct {
	Records   []PoolUsageRecord `json:"records"`
	DexUsage  map[string]int    `json:"dexUsage"`
	PairUsage map[string]int    `json:"pairUsage"`
}

// HopNode is a token vertex in the hop graph.
type HopNode struct {
	Symbol string `json:"symbol"`
	Mint   string `json:"mint"`
}

// HopEdge is one swap step between two tokens, weighted by absolute
// price impact and tagged with its origin.
type HopEdge struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	Weight     float64 `json:"weight"`
	RouteIndex int     `json:"routeIndex"`
	StepIndex  int     `json:"stepIndex"`
}

// HopGraph is the directed multigraph of token hops across routes.
type HopGraph struct {
	Nodes []HopNode `json:"nodes"`
	Edges []HopEdge `json:"edges"`
}

// RouteComplexity summarizes one route: hop count, accumulated absolute
// price impact, and the aggregator score passed through.
type RouteComplexity struct {
	RouteIndex     int     `json:"routeIndex"`
	StepCount      int     `json:"stepCount"`
	TotalImpactPct float64 `json:"totalImpactPct"`
	Score          float64 `json:"score"`
}

// PoolEfficiency aggregates pool quality across a summary's records.
type PoolEfficiency struct {
	TotalPools    int     `json:"totalPools"`
	UniqueDexes   int     `json:"uniqueDexes"`
	AvgImpactPct  float64 `json:"avgImpactPct"`
	MinImpactPct  float64 `json:"minImpactPct"`
	MaxImpactPct  float64 `json:"maxImpactPct"`
	MostUsedDex   string  `json:"mostUsedDex"`
	AvgRouteScore float64 `json:"avgRouteScore"`
}

// RouteAnalysis is the full response for a route request.
type RouteAnalysis struct {
	Routes     []Route           `json:"routes"`
	Pools      PoolSummary       `json:"pools"`
	Efficiency PoolEfficiency    `json:"efficiency"`
	Graph      HopGraph          `json:"graph"`
	Complexity []RouteComplexity `json:"complexity"`
	// Heatmap counts pairs symmetrically: "A-B" and "B-A" both land on "A-B".
	Heatmap map[string]int `json:"heatmap"`
}
