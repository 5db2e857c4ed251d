package repository

import (
	"context"

	"JupLens/internal/domain/models"
)

// CatalogSource fetches the full token list from the aggregator.
type CatalogSource interface {
	FetchCatalog(ctx context.Context) (map[string]models.TokenInfo, error)
}

// PriceSource looks up the current USD price for a single mint.
// A zero price with a nil error means the source had no data.
type PriceSource interface {
	Price(ctx context.Context, mint string) (float64, error)
}

// QuoteSource fetches candidate swap routes for a query.
type QuoteSource interface {
	Routes(ctx context.Context, q models.RouteQuery) ([]models.Route, error)
}

type Metrics interface {
	RecordCatalogSize(n int)
	RecordPriceLookup(source string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
