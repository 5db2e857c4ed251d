package service

import (
	"context"

	"JupLens/internal/domain/models"
)

// InsightProvider produces a short narrative commentary for a valued
// portfolio. Best-effort: implementations return a fixed placeholder
// rather than an error when no model is reachable.
type InsightProvider interface {
	Narrate(ctx context.Context, p models.Portfolio, r models.RiskAssessment) (string, error)
}
