package jupiter

// Wire shapes for the Jupiter public APIs. All numeric amounts arrive as
// strings; anything unparsable is treated as absent.

type tokenRecord struct {
	Address  string   `json:"address"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Decimals int      `json:"decimals"`
	LogoURI  string   `json:"logoURI"`
	Tags     []string `json:"tags"`
}

type priceResponse struct {
	Data map[string]priceEntry `json:"data"`
}

type priceEntry struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

type quoteResponse struct {
	InAmount       string          `json:"inAmount"`
	OutAmount      string          `json:"outAmount"`
	PriceImpactPct string          `json:"priceImpactPct"`
	RoutePlan      []routePlanStep `json:"routePlan"`
	// Legacy multi-route payloads carry a routes array instead of a
	// single routePlan.
	Routes []legacyRoute `json:"routes"`
}

type routePlanStep struct {
	SwapInfo *swapInfo `json:"swapInfo"`
	Percent  int       `json:"percent"`
}

type swapInfo struct {
	AmmKey         string  `json:"ammKey"`
	Label          string  `json:"label"`
	InputMint      string  `json:"inputMint"`
	OutputMint     string  `json:"outputMint"`
	FeeAmount      string  `json:"feeAmount"`
	FeeMint        string  `json:"feeMint"`
	LpFee          *feePct `json:"lpFee"`
	PlatformFee    *feePct `json:"platformFee"`
	PriceImpactPct string  `json:"priceImpactPct"`
}

type feePct struct {
	Pct float64 `json:"pct"`
}

type legacyRoute struct {
	InAmount       string          `json:"inAmount"`
	OutAmount      string          `json:"outAmount"`
	PriceImpactPct string          `json:"priceImpactPct"`
	Score          float64         `json:"score"`
	MarketInfos    []routePlanStep `json:"marketInfos"`
}
