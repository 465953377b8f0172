package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"barcode_lookup/internal/domain"
)

const (
	SourceName       = "openfoodfacts"
	defaultUserAgent = "BarcodeLookup/1.0"
	notFoundReason   = "product not found"
	productFields    = "code,_id,product_name,product_name_en,generic_name,brands,serving_size,nutriments"
)

// Config holds Open Food Facts client configuration.
type Config struct {
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client fetches single products from the Open Food Facts API.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logger         *slog.Logger
}

// retryableError marks failures worth another attempt.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func New(cfg Config, logger *slog.Logger) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:      userAgent,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		logger:         logger.With("source", SourceName),
	}
}

// Name returns the cache source name for this provider.
func (c *Client) Name() string {
	return SourceName
}

// FetchByBarcode looks a product up. Unknown products are reported through
// the result, not as an error; errors are transport or decoding failures.
func (c *Client) FetchByBarcode(ctx context.Context, barcode domain.Barcode) (*domain.FetchResult, error) {
	url := fmt.Sprintf("%s/api/v2/product/%s.json?fields=%s", c.baseURL, barcode, productFields)

	var (
		resp *APIResponse
		raw  []byte
		err  error
	)

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		resp, raw, err = c.doRequest(ctx, url)
		if err == nil {
			break
		}

		var retryable *retryableError
		if !errors.As(err, &retryable) {
			return nil, err
		}
		if attempt == c.maxAttempts {
			return nil, fmt.Errorf("after %d attempts: %w", c.maxAttempts, err)
		}

		backoff := c.calculateBackoff(attempt)
		c.logger.Warn("request failed, retrying",
			"barcode", barcode,
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	if resp.Status != 1 || resp.Product == nil {
		reason := resp.StatusVerbose
		if reason == "" {
			reason = notFoundReason
		}
		c.logger.Debug("product not found", "barcode", barcode, "reason", reason)
		return &domain.FetchResult{Reason: reason}, nil
	}

	product := c.transform(barcode, resp.Product, raw)
	if product.ProductName == "" {
		return &domain.FetchResult{Reason: "product has no name"}, nil
	}

	return &domain.FetchResult{Product: product}, nil
}

func (c *Client) doRequest(ctx context.Context, url string) (*APIResponse, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, &retryableError{err: fmt.Errorf("execute request: %w", err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		body, _ := io.ReadAll(resp.Body)
		var apiResp APIResponse
		if err := json.Unmarshal(body, &apiResp); err != nil || apiResp.StatusVerbose == "" {
			apiResp = APIResponse{StatusVerbose: notFoundReason}
		}
		apiResp.Status = 0
		apiResp.Product = nil
		return &apiResp, body, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, nil, &retryableError{err: fmt.Errorf("unexpected status: %d", resp.StatusCode)}
	default:
		return nil, nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &retryableError{err: fmt.Errorf("read response: %w", err)}
	}

	var apiResp APIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, nil, fmt.Errorf("decode response: %w", err)
	}

	return &apiResp, body, nil
}

func (c *Client) calculateBackoff(attempt int) time.Duration {
	backoff := c.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if c.maxBackoff > 0 && backoff > c.maxBackoff {
		backoff = c.maxBackoff
	}
	return backoff
}

func (c *Client) transform(barcode domain.Barcode, p *Product, raw []byte) *domain.ExternalProduct {
	name := firstNonEmpty(p.ProductName, p.ProductNameEn, p.GenericName)
	c.logUnparsed(barcode, &p.Nutriments)

	product := &domain.ExternalProduct{
		Barcode:     barcode,
		ProductName: name,
		RawPayload:  json.RawMessage(raw),
		Nutrients: domain.Nutrients100g{
			EnergyKcal:   p.Nutriments.EnergyKcal100g.Float(),
			Protein:      p.Nutriments.Proteins100g.Float(),
			Carbs:        p.Nutriments.Carbohydrates100g.Float(),
			Fat:          p.Nutriments.Fat100g.Float(),
			SaturatedFat: p.Nutriments.SaturatedFat100g.Float(),
			Sugar:        p.Nutriments.Sugars100g.Float(),
			Fiber:        p.Nutriments.Fiber100g.Float(),
		},
	}

	if id := firstNonEmpty(p.ID, p.Code); id != "" {
		product.SourceID = &id
	}
	if brand := firstBrand(p.Brands); brand != "" {
		product.Brand = &brand
	}
	if serving := strings.TrimSpace(p.ServingSize); serving != "" {
		product.ServingSize = &serving
	}
	if sodium := p.Nutriments.Sodium100g.Float(); sodium != nil {
		mg := *sodium * 1000
		product.Nutrients.SodiumMg = &mg
	}

	return product
}

func (c *Client) logUnparsed(barcode domain.Barcode, n *Nutriments) {
	fields := map[string]*Number{
		"energy-kcal_100g":   n.EnergyKcal100g,
		"proteins_100g":      n.Proteins100g,
		"carbohydrates_100g": n.Carbohydrates100g,
		"fat_100g":           n.Fat100g,
		"saturated-fat_100g": n.SaturatedFat100g,
		"sugars_100g":        n.Sugars100g,
		"fiber_100g":         n.Fiber100g,
		"sodium_100g":        n.Sodium100g,
	}
	for name, v := range fields {
		if raw, ok := v.Unparsed(); ok {
			c.logger.Debug("ignoring non-numeric nutriment", "barcode", barcode, "field", name, "value", raw)
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstBrand(brands string) string {
	first, _, _ := strings.Cut(brands, ",")
	return strings.TrimSpace(first)
}
