package usecase

import (
	"context"
	"strings"
	"time"

	"JupLens/internal/domain/models"
	domrepo "JupLens/internal/domain/repository"
	"JupLens/internal/service/ratelimit"
	"JupLens/pkg/cache"
	applogger "JupLens/pkg/logger"
)

// unknownPriceFloor keeps unpriceable tokens visible in the valuation
// instead of silently dropping them.
const unknownPriceFloor = 1e-6

const priceLimiterKey = "jupiter_price"

// fallbackPrices are used when the live price source fails or reports a
// non-positive price, keyed by upper-case symbol.
var fallbackPrices = map[string]float64{
	"SOL":  150.0,
	"USDC": 1.0,
	"USDT": 1.0,
	"JUP":  0.8,
	"BONK": 0.000001,
	"WIF":  0.5,
}

var stableTickers = []string{"USDC", "USDT", "DAI", "FRAX", "BUSD", "TUSD"}

var memeKeywords = []string{"BONK", "WIF", "BOME", "PEPE", "DOGE", "SHIB", "FLOKI", "BABYDOGE", "CAT", "DOG"}

var governanceTickers = map[string]bool{
	"JUP":  true,
	"UNI":  true,
	"AAVE": true,
	"COMP": true,
	"CRV":  true,
}

// Valuer prices holdings with live lookups, a fixed fallback table and a
// floor for unknown tokens. Live lookups go through a token bucket so a
// burst of requests cannot hammer the price API.
type Valuer struct {
	prices   domrepo.PriceSource
	limiter  *ratelimit.Limiter
	cache    cache.Service
	metrics  domrepo.Metrics
	logger   *applogger.Logger
	priceTTL time.Duration
	capacity float64
	refill   float64
}

func NewValuer(prices domrepo.PriceSource, limiter *ratelimit.Limiter, cacheSvc cache.Service, metrics domrepo.Metrics, logger *applogger.Logger, priceTTL time.Duration, capacity, refillPerSec float64) *Valuer {
	if priceTTL <= 0 {
		priceTTL = time.Minute
	}
	if capacity <= 0 {
		capacity = 10
	}
	if refillPerSec <= 0 {
		refillPerSec = 5
	}
	return &Valuer{
		prices:   prices,
		limiter:  limiter,
		cache:    cacheSvc,
		metrics:  metrics,
		logger:   logger,
		priceTTL: priceTTL,
		capacity: capacity,
		refill:   refillPerSec,
	}
}

// PriceOf returns a non-negative price for the token and whether it came
// from a live lookup. Never fails: fallback table first, then the floor.
func (v *Valuer) PriceOf(ctx context.Context, info models.TokenInfo) (float64, bool) {
	key := cache.GenerateKey("price", info.Address)

	if v.cache != nil {
		var cached float64
		if err := v.cache.Get(ctx, key, &cached); err == nil && cached > 0 {
			v.recordLookup("live")
			return cached, true
		}
	}

	if v.prices != nil && (v.limiter == nil || v.limiter.Allow(priceLimiterKey, v.capacity, v.refill)) {
		price, err := v.prices.Price(ctx, info.Address)
		switch {
		case err != nil:
			if v.logger != nil {
				v.logger.Warn("live price lookup failed",
					applogger.String("mint", models.ShortenMint(info.Address)),
					applogger.Error(err),
				)
			}
			if v.metrics != nil {
				v.metrics.RecordError("price_lookup")
			}
		case price > 0:
			if v.cache != nil {
				_ = v.cache.Set(ctx, key, price, v.priceTTL)
			}
			v.recordLookup("live")
			return price, true
		}
	}

	v.recordLookup("fallback")
	if price, ok := fallbackPrices[strings.ToUpper(info.Symbol)]; ok {
		return price, false
	}
	return unknownPriceFloor, false
}

// ValuePortfolio values each holding against the catalog. Holdings with a
// non-positive quantity are dropped silently.
func (v *Valuer) ValuePortfolio(ctx context.Context, holdings []models.Holding, catalog models.Catalog) models.Portfolio {
	p := models.Portfolio{}
	for _, h := range holdings {
		if h.Amount <= 0 {
			continue
		}

		info := catalog.Resolve(h.Mint)
		price, live := v.PriceOf(ctx, info)
		valued := models.ValuedHolding{
			Mint:      h.Mint,
			Symbol:    info.Symbol,
			Name:      info.Name,
			Amount:    h.Amount,
			Price:     price,
			Value:     price * h.Amount,
			Category:  Categorize(info),
			LivePrice: live,
		}

		p.Holdings = append(p.Holdings, valued)
		p.TotalValue += valued.Value
		if live {
			p.LiveCount++
		}
	}
	return p
}

func (v *Valuer) recordLookup(source string) {
	if v.metrics != nil {
		v.metrics.RecordPriceLookup(source)
	}
}

// Categorize classifies a token. The chain is ordered and first-match-wins:
// stable tickers, meme keywords, governance tickers, native SOL, then tags.
func Categorize(info models.TokenInfo) models.Category {
	symbol := strings.ToUpper(info.Symbol)
	name := strings.ToUpper(info.Name)

	for _, s := range stableTickers {
		if strings.Contains(symbol, s) {
			return models.CategoryStablecoin
		}
	}
	for _, k := range memeKeywords {
		if strings.Contains(symbol, k) || strings.Contains(name, k) {
			return models.CategoryMeme
		}
	}
	if governanceTickers[symbol] {
		return models.CategoryGovernance
	}
	if symbol == "SOL" {
		return models.CategoryNative
	}
	for _, tag := range info.Tags {
		switch strings.ToLower(tag) {
		case "stablecoin":
			return models.CategoryStablecoin
		case "meme":
			return models.CategoryMeme
		}
	}
	return models.CategoryOther
}

// RiskScore scores a valued portfolio's composition on [0,100]:
// meme exposure weighs 40, non-stable exposure 30, concentration 30.
// A worthless portfolio has score 0 and level Unknown.
func RiskScore(p models.Portfolio) models.RiskAssessment {
	if p.TotalValue <= 0 {
		return models.RiskAssessment{Level: models.RiskUnknown}
	}

	var memeValue, stableValue, maxValue float64
	for _, h := range p.Holdings {
		switch h.Category {
		case models.CategoryMeme:
			memeValue += h.Value
		case models.CategoryStablecoin:
			stableValue += h.Value
		}
		if h.Value > maxValue {
			maxValue = h.Value
		}
	}

	memeRatio := memeValue / p.TotalValue
	stableRatio := stableValue / p.TotalValue
	concentration := maxValue / p.TotalValue

	score := memeRatio*40 + (1-stableRatio)*30 + concentration*30
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := models.RiskInvestor
	switch {
	case score >= 70:
		level = models.RiskDegen
	case score >= 40:
		level = models.RiskNormie
	}

	return models.RiskAssessment{
		Score:         score,
		Level:         level,
		MemeRatio:     memeRatio,
		StableRatio:   stableRatio,
		Concentration: concentration,
	}
}
