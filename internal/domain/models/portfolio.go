package models

// Category classifies a token by its role in a portfolio.
type Category string

const (
	CategoryStablecoin Category = "Stablecoin"
	CategoryMeme       Category = "Meme"
	CategoryGovernance Category = "Governance"
	CategoryNative     Category = "Native"
	CategoryOther      Category = "Other"
)

// Holding is a caller-supplied position: a mint address and a quantity.
type Holding struct {
	Mint   string  `json:"mint"`
	Amount float64 `json:"amount"`
}

// ValuedHolding is a holding enriched with metadata, price and category.
type ValuedHolding struct {
	Mint     string   `json:"mint"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Amount   float64  `json:"amount"`
	Price    float64  `json:"price"`
	Value    float64  `json:"value"`
	Category Category `json:"category"`
	// LivePrice is false when the price came from the fallback table.
	LivePrice bool `json:"livePrice"`
}

// Portfolio is the valued view of a set of holdings.
type Portfolio struct {
	Holdings   []ValuedHolding `json:"holdings"`
	TotalValue float64         `json:"totalValue"`
	LiveCount  int             `json:"liveCount"`
}

// CategoryBreakdown sums holding values per category.
func (p Portfolio) CategoryBreakdown() map[Category]float64 {
	out := make(map[Category]float64)
	for _, h := range p.Holdings {
		out[h.Category] += h.Value
	}
	return out
}

// RiskLevel buckets a composition risk score.
type RiskLevel string

const (
	RiskDegen    RiskLevel = "Degen"
	RiskNormie   RiskLevel = "Normie"
	RiskInvestor RiskLevel = "Investor"
	RiskUnknown  RiskLevel = "Unknown"
)

// RiskAssessment is the composition risk of a valued portfolio.
type RiskAssessment struct {
	Score         float64   `json:"score"`
	Level         RiskLevel `json:"level"`
	MemeRatio     float64   `json:"memeRatio"`
	StableRatio   float64   `json:"stableRatio"`
	Concentration float64   `json:"concentration"`
}

// PortfolioAnalysis is the full response for a portfolio request.
type PortfolioAnalysis struct {
	Portfolio  Portfolio            `json:"portfolio"`
	Risk       RiskAssessment       `json:"risk"`
	ByCategory map[Category]float64 `json:"byCategory"`
	Insight    string               `json:"insight,omitempty"`
}
