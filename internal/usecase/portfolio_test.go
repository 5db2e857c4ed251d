package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"JupLens/internal/domain/models"
	"JupLens/internal/service/ratelimit"
)

const (
	solMint  = "So11111111111111111111111111111111111111112"
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	bonkMint = "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263"
)

type stubPrices struct {
	prices map[string]float64
	err    error
	calls  int
}

func (s *stubPrices) Price(_ context.Context, mint string) (float64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.prices[mint], nil
}

func testCatalog() models.Catalog {
	return models.Catalog{
		Tokens: map[string]models.TokenInfo{
			solMint:  {Address: solMint, Symbol: "SOL", Name: "Wrapped SOL", Decimals: 9},
			usdcMint: {Address: usdcMint, Symbol: "USDC", Name: "USD Coin", Decimals: 6},
			bonkMint: {Address: bonkMint, Symbol: "BONK", Name: "Bonk", Decimals: 5},
		},
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		info models.TokenInfo
		want models.Category
	}{
		{"stable ticker", models.TokenInfo{Symbol: "USDC", Name: "USD Coin"}, models.CategoryStablecoin},
		{"stable substring", models.TokenInfo{Symbol: "xUSDT", Name: "Wrapped Tether"}, models.CategoryStablecoin},
		{"stable ticker beats meme name", models.TokenInfo{Symbol: "USDC", Name: "Doge USD"}, models.CategoryStablecoin},
		{"meme symbol", models.TokenInfo{Symbol: "BONK", Name: "Bonk"}, models.CategoryMeme},
		{"meme name only", models.TokenInfo{Symbol: "XYZ", Name: "Baby Doge Moon"}, models.CategoryMeme},
		{"governance", models.TokenInfo{Symbol: "JUP", Name: "Jupiter"}, models.CategoryGovernance},
		{"native", models.TokenInfo{Symbol: "SOL", Name: "Wrapped SOL"}, models.CategoryNative},
		{"stablecoin tag", models.TokenInfo{Symbol: "EURe", Name: "Monerium EUR", Tags: []string{"stablecoin"}}, models.CategoryStablecoin},
		{"meme tag", models.TokenInfo{Symbol: "ZZZ", Name: "Sleep", Tags: []string{"meme"}}, models.CategoryMeme},
		{"other", models.TokenInfo{Symbol: "RAY", Name: "Raydium"}, models.CategoryOther},
		{"unresolved", models.TokenInfo{Symbol: "DezXAZ8z...B1pPB263", Unresolved: true}, models.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.info))
		})
	}
}

func TestValuePortfolio_FallbackExample(t *testing.T) {
	// All live lookups fail, so every price comes from the fallback table.
	valuer := NewValuer(&stubPrices{err: errors.New("api down")}, nil, nil, nil, nil, 0, 0, 0)

	holdings := []models.Holding{
		{Mint: solMint, Amount: 10},
		{Mint: usdcMint, Amount: 100},
		{Mint: bonkMint, Amount: 1_000_000},
	}

	p := valuer.ValuePortfolio(context.Background(), holdings, testCatalog())
	require.Len(t, p.Holdings, 3)
	assert.InDelta(t, 1601.0, p.TotalValue, 1e-9)
	assert.Equal(t, 0, p.LiveCount)

	// Total always equals the sum of constituent values.
	var sum float64
	for _, h := range p.Holdings {
		sum += h.Value
	}
	assert.InDelta(t, p.TotalValue, sum, 1e-9)

	risk := RiskScore(p)
	assert.InDelta(t, 56.26, risk.Score, 0.01)
	assert.Equal(t, models.RiskNormie, risk.Level)
}

func TestValuePortfolio_DropsNonPositiveAmounts(t *testing.T) {
	valuer := NewValuer(&stubPrices{err: errors.New("down")}, nil, nil, nil, nil, 0, 0, 0)

	holdings := []models.Holding{
		{Mint: solMint, Amount: 1},
		{Mint: usdcMint, Amount: 0},
		{Mint: bonkMint, Amount: -5},
	}

	p := valuer.ValuePortfolio(context.Background(), holdings, testCatalog())
	require.Len(t, p.Holdings, 1)
	assert.Equal(t, "SOL", p.Holdings[0].Symbol)
	for _, h := range p.Holdings {
		assert.Greater(t, h.Amount, 0.0)
	}
}

func TestValuePortfolio_UnknownMintUsesFloor(t *testing.T) {
	valuer := NewValuer(&stubPrices{err: errors.New("down")}, nil, nil, nil, nil, 0, 0, 0)

	unknown := "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
	p := valuer.ValuePortfolio(context.Background(), []models.Holding{{Mint: unknown, Amount: 42}}, testCatalog())

	require.Len(t, p.Holdings, 1)
	assert.Equal(t, "7xKXtg2C...uJosgAsU", p.Holdings[0].Symbol)
	assert.InDelta(t, 1e-6, p.Holdings[0].Price, 1e-12)
	assert.False(t, p.Holdings[0].LivePrice)
}

func TestPriceOf(t *testing.T) {
	t.Run("live price wins", func(t *testing.T) {
		valuer := NewValuer(&stubPrices{prices: map[string]float64{solMint: 187.5}}, nil, nil, nil, nil, 0, 0, 0)
		price, live := valuer.PriceOf(context.Background(), models.TokenInfo{Address: solMint, Symbol: "SOL"})
		assert.Equal(t, 187.5, price)
		assert.True(t, live)
	})

	t.Run("non-positive live price falls back", func(t *testing.T) {
		valuer := NewValuer(&stubPrices{prices: map[string]float64{}}, nil, nil, nil, nil, 0, 0, 0)
		price, live := valuer.PriceOf(context.Background(), models.TokenInfo{Address: solMint, Symbol: "SOL"})
		assert.Equal(t, 150.0, price)
		assert.False(t, live)
	})

	t.Run("throttled lookup falls back", func(t *testing.T) {
		src := &stubPrices{prices: map[string]float64{solMint: 187.5}}
		limiter := ratelimit.New()
		valuer := NewValuer(src, limiter, nil, nil, nil, 0, 1, 0.0001)

		_, live := valuer.PriceOf(context.Background(), models.TokenInfo{Address: solMint, Symbol: "SOL"})
		assert.True(t, live)

		price, live := valuer.PriceOf(context.Background(), models.TokenInfo{Address: solMint, Symbol: "SOL"})
		assert.False(t, live)
		assert.Equal(t, 150.0, price)
		assert.Equal(t, 1, src.calls)
	})
}

func TestRiskScore(t *testing.T) {
	t.Run("worthless portfolio is unknown", func(t *testing.T) {
		risk := RiskScore(models.Portfolio{})
		assert.Equal(t, 0.0, risk.Score)
		assert.Equal(t, models.RiskUnknown, risk.Level)
	})

	t.Run("all meme single holding is degen and clamped", func(t *testing.T) {
		p := models.Portfolio{
			Holdings:   []models.ValuedHolding{{Symbol: "BONK", Value: 500, Category: models.CategoryMeme}},
			TotalValue: 500,
		}
		risk := RiskScore(p)
		// meme 40 + non-stable 30 + concentration 30 = 100
		assert.InDelta(t, 100.0, risk.Score, 1e-9)
		assert.Equal(t, models.RiskDegen, risk.Level)
	})

	t.Run("all stable is investor", func(t *testing.T) {
		p := models.Portfolio{
			Holdings: []models.ValuedHolding{
				{Symbol: "USDC", Value: 50, Category: models.CategoryStablecoin},
				{Symbol: "USDT", Value: 50, Category: models.CategoryStablecoin},
			},
			TotalValue: 100,
		}
		risk := RiskScore(p)
		// concentration 0.5 is the only contribution
		assert.InDelta(t, 15.0, risk.Score, 1e-9)
		assert.Equal(t, models.RiskInvestor, risk.Level)
	})

	t.Run("more meme exposure scores higher", func(t *testing.T) {
		base := models.Portfolio{
			Holdings: []models.ValuedHolding{
				{Symbol: "RAY", Value: 90, Category: models.CategoryOther},
				{Symbol: "BONK", Value: 10, Category: models.CategoryMeme},
			},
			TotalValue: 100,
		}
		memier := models.Portfolio{
			Holdings: []models.ValuedHolding{
				{Symbol: "RAY", Value: 50, Category: models.CategoryOther},
				{Symbol: "BONK", Value: 50, Category: models.CategoryMeme},
			},
			TotalValue: 100,
		}
		assert.Greater(t, RiskScore(memier).Score, RiskScore(base).Score)
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		portfolios := []models.Portfolio{
			{Holdings: []models.ValuedHolding{{Value: 1, Category: models.CategoryMeme}}, TotalValue: 1},
			{Holdings: []models.ValuedHolding{{Value: 1, Category: models.CategoryStablecoin}}, TotalValue: 1},
			{Holdings: []models.ValuedHolding{
				{Value: 3, Category: models.CategoryMeme},
				{Value: 7, Category: models.CategoryNative},
			}, TotalValue: 10},
		}
		for _, p := range portfolios {
			score := RiskScore(p).Score
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	})
}
