package aivision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tacticalshop/storeapi/internal/config"
)

// Client calls the external image-analysis endpoint used by the
// AI-assisted product-entry flow. One shot per request, no retry;
// a failure is terminal for the request and the caller re-submits.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new AI vision client
func NewClient(cfg config.AIVisionConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// AnalyzeRequest is the payload sent to the inference endpoint
type AnalyzeRequest struct {
	ImageURL string `json:"image_url"`
}

// ProductDraft is the inference result mapped onto the product form:
// suggested bilingual names, description, category and sizes.
type ProductDraft struct {
	NameEN        string   `json:"name_en"`
	NameKA        string   `json:"name_ka"`
	DescriptionEN string   `json:"description_en"`
	DescriptionKA string   `json:"description_ka"`
	CategorySlug  string   `json:"category_slug"`
	Sizes         []string `json:"sizes"`
	Confidence    float64  `json:"confidence"`
}

// Analyze forwards a product image and maps the JSON result onto a draft
func (c *Client) Analyze(ctx context.Context, imageURL string) (*ProductDraft, error) {
	if c.endpoint == "" {
		return nil, fmt.Errorf("AI vision endpoint is not configured")
	}

	payload, err := json.Marshal(AnalyzeRequest{ImageURL: imageURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("AI vision request failed",
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("vision API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var draft ProductDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &draft, nil
}
