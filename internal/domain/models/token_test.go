package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortenMint(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short symbol", "SOL", "SOL"},
		{"exactly sixteen chars", "1234567890123456", "1234567890123456"},
		{"seventeen chars", "12345678901234567", "12345678...01234567"},
		{"full mint", "DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", "DezXAZ8z...B1pPB263"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShortenMint(tt.in))
		})
	}
}

func TestCatalogResolve(t *testing.T) {
	mint := "So11111111111111111111111111111111111111112"
	c := Catalog{Tokens: map[string]TokenInfo{
		mint: {Address: mint, Symbol: "SOL", Name: "Wrapped SOL"},
	}}

	t.Run("known mint", func(t *testing.T) {
		info := c.Resolve(mint)
		assert.Equal(t, "SOL", info.Symbol)
		assert.False(t, info.Unresolved)
	})

	t.Run("unknown mint degrades", func(t *testing.T) {
		unknown := "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
		info := c.Resolve(unknown)
		assert.True(t, info.Unresolved)
		assert.Equal(t, "EPjFWdd5...ZwyTDt1v", info.Symbol)
		assert.Equal(t, unknown, info.Address)
		assert.Empty(t, info.Tags)
	})
}

func TestCategoryBreakdown(t *testing.T) {
	p := Portfolio{
		Holdings: []ValuedHolding{
			{Value: 100, Category: CategoryStablecoin},
			{Value: 50, Category: CategoryStablecoin},
			{Value: 25, Category: CategoryMeme},
		},
		TotalValue: 175,
	}

	assert.Equal(t, map[Category]float64{
		CategoryStablecoin: 150,
		CategoryMeme:       25,
	}, p.CategoryBreakdown())
}
