package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type TokenSearchRequest struct {
	Query string `query:"query" json:"query"`
	Limit int    `query:"limit" json:"limit" default:"50" validate:"gte=1,lte=500"`
}

type HoldingRequest struct {
	Mint   string  `json:"mint" validate:"required"`
	Amount float64 `json:"amount"`
}

type PortfolioRequest struct {
	Holdings []HoldingRequest `json:"holdings" validate:"required,min=1,dive"`
	Insight  bool             `json:"insight"`
}

type RouteRequest struct {
	InputMint   string `json:"inputMint" validate:"required"`
	OutputMint  string `json:"outputMint" validate:"required,nefield=InputMint"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	SlippageBps int    `json:"slippageBps" default:"50" validate:"gte=1,lte=1000"`
}

// RouteQuery is the domain form of a route request passed to the quote source.
type RouteQuery struct {
	InputMint   string
	OutputMint  string
	Amount      int64
	SlippageBps int
}
