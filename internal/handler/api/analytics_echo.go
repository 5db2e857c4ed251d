package api

import (
	models "JupLens/internal/domain/models"
	"JupLens/internal/usecase"
	xhttp "JupLens/pkg/http"
	xlogger "JupLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler implements Echo-based HTTP handlers following Clean Architecture.
type AnalyticsHandler struct {
	logger    *xlogger.Logger
	catalog   *usecase.CatalogService
	portfolio *usecase.PortfolioAnalyzer
	routes    *usecase.RouteAnalyzer
}

func NewAnalyticsHandler(logger *xlogger.Logger, catalog *usecase.CatalogService, portfolio *usecase.PortfolioAnalyzer, routes *usecase.RouteAnalyzer) *AnalyticsHandler {
	return &AnalyticsHandler{logger: logger, catalog: catalog, portfolio: portfolio, routes: routes}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/tokens", h.Tokens)
	g.POST("/portfolio", h.Portfolio)
	g.POST("/routes", h.Routes)
	e.GET("/healthz", h.Health)
}

// Tokens searches the catalog snapshot by symbol or name.
func (h *AnalyticsHandler) Tokens(c echo.Context) error {
	req := &models.TokenSearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.catalog.Search(c.Request().Context(), req.Query, req.Limit)
	return xhttp.SuccessResponse(c, res)
}

// Portfolio values the submitted holdings and scores composition risk.
// Non-positive amounts are dropped by the valuer, not rejected here.
func (h *AnalyticsHandler) Portfolio(c echo.Context) error {
	req := &models.PortfolioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	holdings := make([]models.Holding, 0, len(req.Holdings))
	for _, hr := range req.Holdings {
		holdings = append(holdings, models.Holding{Mint: hr.Mint, Amount: hr.Amount})
	}

	res := h.portfolio.Analyze(c.Request().Context(), holdings, req.Insight)
	return xhttp.SuccessResponse(c, res)
}

// Routes fetches a route batch and returns every aggregate view.
func (h *AnalyticsHandler) Routes(c echo.Context) error {
	req := &models.RouteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.routes.Analyze(c.Request().Context(), models.RouteQuery{
		InputMint:   req.InputMint,
		OutputMint:  req.OutputMint,
		Amount:      req.Amount,
		SlippageBps: req.SlippageBps,
	})
	return xhttp.SuccessResponse(c, res)
}

// Health reports liveness and the catalog snapshot age.
func (h *AnalyticsHandler) Health(c echo.Context) error {
	tokens, age := h.catalog.Status()
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":              "ok",
		"catalog_tokens":      tokens,
		"catalog_age_seconds": int(age.Seconds()),
	})
}
