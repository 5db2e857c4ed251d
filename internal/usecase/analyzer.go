package usecase

import (
	"context"
	"time"

	"JupLens/internal/domain/models"
	domrepo "JupLens/internal/domain/repository"
	domsvc "JupLens/internal/domain/service"
	applogger "JupLens/pkg/logger"
)

// PortfolioAnalyzer values holdings, scores composition risk and
// optionally attaches narrative commentary.
type PortfolioAnalyzer struct {
	catalog *CatalogService
	valuer  *Valuer
	insight domsvc.InsightProvider
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewPortfolioAnalyzer(catalog *CatalogService, valuer *Valuer, insight domsvc.InsightProvider, metrics domrepo.Metrics, logger *applogger.Logger) *PortfolioAnalyzer {
	return &PortfolioAnalyzer{
		catalog: catalog,
		valuer:  valuer,
		insight: insight,
		metrics: metrics,
		logger:  logger,
	}
}

// Analyze is pure request-scoped computation over the current catalog
// snapshot; it never fails on bad holdings or unreachable price data.
func (a *PortfolioAnalyzer) Analyze(ctx context.Context, holdings []models.Holding, withInsight bool) models.PortfolioAnalysis {
	start := time.Now()

	catalog := a.catalog.Snapshot(ctx)
	portfolio := a.valuer.ValuePortfolio(ctx, holdings, catalog)
	risk := RiskScore(portfolio)

	analysis := models.PortfolioAnalysis{
		Portfolio:  portfolio,
		Risk:       risk,
		ByCategory: portfolio.CategoryBreakdown(),
	}

	if withInsight && a.insight != nil {
		text, err := a.insight.Narrate(ctx, portfolio, risk)
		if err != nil {
			if a.logger != nil {
				a.logger.Warn("insight generation failed", applogger.Error(err))
			}
			if a.metrics != nil {
				a.metrics.RecordError("insight")
			}
		} else {
			analysis.Insight = text
		}
	}

	if a.metrics != nil {
		a.metrics.RecordLatency("portfolio_analysis", time.Since(start).Seconds())
	}
	return analysis
}
