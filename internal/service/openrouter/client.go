package openrouter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"JupLens/internal/domain/models"
	xhttp "JupLens/pkg/http"
	applogger "JupLens/pkg/logger"
)

// FallbackMessage is returned when no candidate model produced a usable
// completion. Narrative insight is best-effort and never blocks analysis.
const FallbackMessage = "AI analysis unavailable at this time. Please try again later."

var defaultModels = []string{
	"meta-llama/llama-3.1-8b-instruct:free",
	"mistralai/mistral-7b-instruct:free",
	"google/gemma-2-9b-it:free",
}

// Client generates portfolio commentary via the OpenRouter chat API.
type Client struct {
	baseURL string
	apiKey  string
	models  []string
	http    *xhttp.Client
	logger  *applogger.Logger
}

// NewClient creates an OpenRouter client. Candidate models are tried in
// order; the first usable completion wins.
func NewClient(baseURL, apiKey string, modelList []string, timeout time.Duration, l *applogger.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if len(modelList) == 0 {
		modelList = defaultModels
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		models:  modelList,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
		logger:  l,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Narrate asks each candidate model for a short portfolio commentary.
func (c *Client) Narrate(ctx context.Context, p models.Portfolio, r models.RiskAssessment) (string, error) {
	prompt := buildPrompt(p, r)

	for _, model := range c.models {
		text, err := c.complete(ctx, model, prompt)
		if err != nil {
			if c.logger != nil {
				c.logger.Warn("insight model failed",
					applogger.String("model", model),
					applogger.Error(err),
				)
			}
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}

	return FallbackMessage, nil
}

func (c *Client) complete(ctx context.Context, model, prompt string) (string, error) {
	req := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a concise crypto portfolio analyst. Reply in at most four sentences."},
			{Role: "user", Content: prompt},
		},
	}

	var resp chatResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    c.baseURL + "/chat/completions",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.apiKey,
			"Content-Type":  "application/json",
		},
		Body: req,
	}, &resp)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s: empty choices", model)
	}
	return resp.Choices[0].Message.Content, nil
}

func buildPrompt(p models.Portfolio, r models.RiskAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Portfolio worth $%.2f across %d holdings. Risk score %.1f (%s).\n", p.TotalValue, len(p.Holdings), r.Score, r.Level)
	fmt.Fprintf(&b, "Meme exposure %.0f%%, stable exposure %.0f%%, concentration %.0f%%.\nHoldings:\n", r.MemeRatio*100, r.StableRatio*100, r.Concentration*100)
	for _, h := range p.Holdings {
		fmt.Fprintf(&b, "- %s (%s): %.4f units, $%.2f\n", h.Symbol, h.Category, h.Amount, h.Value)
	}
	b.WriteString("Comment on composition risk and diversification.")
	return b.String()
}
