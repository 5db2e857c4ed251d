package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"JupLens/internal/domain/models"
	domrepo "JupLens/internal/domain/repository"
	"JupLens/pkg/cache"
	applogger "JupLens/pkg/logger"
)

const catalogCacheKey = "catalog:snapshot"

// CatalogService owns the token catalog snapshot. The snapshot is replaced
// wholesale under a write lock; readers never observe a partial catalog.
// A failed refresh keeps the prior snapshot, or yields an empty catalog
// when none exists yet.
type CatalogService struct {
	source  domrepo.CatalogSource
	cache   cache.Service
	metrics domrepo.Metrics
	logger  *applogger.Logger
	ttl     time.Duration

	mu   sync.RWMutex
	snap models.Catalog
}

func NewCatalogService(source domrepo.CatalogSource, cacheSvc cache.Service, metrics domrepo.Metrics, logger *applogger.Logger, ttl time.Duration) *CatalogService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CatalogService{
		source:  source,
		cache:   cacheSvc,
		metrics: metrics,
		logger:  logger,
		ttl:     ttl,
	}
}

// Snapshot returns the current catalog, refreshing it first when stale.
// Never fails: on refresh errors the previous snapshot (possibly empty)
// is returned.
func (s *CatalogService) Snapshot(ctx context.Context) models.Catalog {
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap.FetchedAt.IsZero() && s.cache != nil {
		if restored, ok := s.restore(ctx); ok {
			snap = restored
		}
	}

	if !snap.FetchedAt.IsZero() && time.Since(snap.FetchedAt) < s.ttl {
		return snap
	}

	if err := s.Refresh(ctx); err != nil && s.logger != nil {
		s.logger.Warn("catalog refresh failed, serving prior snapshot",
			applogger.Error(err),
			applogger.Int("tokens", snap.Len()),
		)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Refresh fetches the token list and replaces the snapshot. Idempotent.
func (s *CatalogService) Refresh(ctx context.Context) error {
	start := time.Now()

	tokens, err := s.source.FetchCatalog(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError("catalog_refresh")
		}
		return err
	}

	snap := models.Catalog{Tokens: tokens, FetchedAt: time.Now()}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordCatalogSize(len(tokens))
		s.metrics.RecordLatency("catalog_refresh", time.Since(start).Seconds())
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, snap, s.ttl); err != nil && s.logger != nil {
			s.logger.Warn("catalog cache write failed", applogger.Error(err))
		}
	}
	if s.logger != nil {
		s.logger.Info("catalog refreshed",
			applogger.Int("tokens", len(tokens)),
			applogger.Duration("took_ms", time.Since(start)),
		)
	}
	return nil
}

// restore loads a previously persisted snapshot, used for warm starts
// with a redis-backed cache.
func (s *CatalogService) restore(ctx context.Context) (models.Catalog, bool) {
	var snap models.Catalog
	if err := s.cache.Get(ctx, catalogCacheKey, &snap); err != nil || snap.FetchedAt.IsZero() {
		return models.Catalog{}, false
	}

	s.mu.Lock()
	if s.snap.FetchedAt.IsZero() {
		s.snap = snap
	} else {
		snap = s.snap
	}
	s.mu.Unlock()

	return snap, true
}

// Status reports the current snapshot without triggering a refresh.
func (s *CatalogService) Status() (tokens int, age time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Len(), s.snap.Age()
}

// Resolve returns best-effort metadata for a mint; never fails.
func (s *CatalogService) Resolve(ctx context.Context, mint string) models.TokenInfo {
	return s.Snapshot(ctx).Resolve(mint)
}

// Search returns up to limit tokens whose symbol or name contains query,
// case-insensitive, ordered by symbol. An empty query lists from the top.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) []models.TokenInfo {
	if limit <= 0 {
		limit = 50
	}
	q := strings.ToUpper(strings.TrimSpace(query))

	snap := s.Snapshot(ctx)
	matches := make([]models.TokenInfo, 0, limit)
	for _, t := range snap.Tokens {
		if q == "" ||
			strings.Contains(strings.ToUpper(t.Symbol), q) ||
			strings.Contains(strings.ToUpper(t.Name), q) {
			matches = append(matches, t)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Symbol != matches[j].Symbol {
			return matches[i].Symbol < matches[j].Symbol
		}
		return matches[i].Address < matches[j].Address
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
