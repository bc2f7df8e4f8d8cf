// Package fakestore implements the catalog source against a FakeStore-style
// REST API.
package fakestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nexshop/storefront/internal/catalog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTimeout caps a single catalog API request.
const defaultTimeout = 10 * time.Second

const tracerName = "github.com/nexshop/storefront/internal/catalog/fakestore"

// Client fetches products from a FakeStore-compatible HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a catalog client for the given API base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("catalog base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse catalog base url: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// wireProduct mirrors the upstream JSON shape. Upstream ids are numeric.
type wireProduct struct {
	ID          json.Number     `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      catalog.Rating  `json:"rating"`
}

func (p wireProduct) toProduct() catalog.Product {
	return catalog.Product{
		ID:          p.ID.String(),
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      p.Rating,
	}
}

// FetchAll returns the full product set.
func (c *Client) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "fakestore.FetchAll")
	defer span.End()

	var wire []wireProduct
	if err := c.getJSON(ctx, "/products", &wire); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	products := make([]catalog.Product, 0, len(wire))
	for _, p := range wire {
		products = append(products, p.toProduct())
	}
	span.SetAttributes(attribute.Int("catalog.count", len(products)))
	return products, nil
}

// FetchOne returns a single product or catalog.ErrNotFound.
func (c *Client) FetchOne(ctx context.Context, id string) (catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "fakestore.FetchOne",
		trace.WithAttributes(attribute.String("catalog.product_id", id)))
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if _, err := strconv.Atoi(id); err != nil {
		return catalog.Product{}, catalog.ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products/"+url.PathEscape(id), nil)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("build product request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return catalog.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		span.SetStatus(codes.Error, resp.Status)
		return catalog.Product{}, fmt.Errorf("fetch product %s: unexpected status %s", id, resp.Status)
	}

	var wire wireProduct
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return catalog.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	// The upstream API answers 200 with an empty body for unknown ids.
	if wire.ID.String() == "" {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return wire.toProduct(), nil
}

// SearchByKeyword matches the keyword against title, description, and
// category. The upstream API has no search endpoint, so matching happens
// over the full set, which is what the storefront UI always did.
func (c *Client) SearchByKeyword(ctx context.Context, query string) ([]catalog.Product, error) {
	ctx, span := c.tracer.Start(ctx, "fakestore.SearchByKeyword",
		trace.WithAttributes(attribute.String("catalog.query", query)))
	defer span.End()

	products, err := c.FetchAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("search products: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return products, nil
	}
	var matches []catalog.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Category), needle) {
			matches = append(matches, p)
		}
	}
	span.SetAttributes(attribute.Int("catalog.matches", len(matches)))
	return matches, nil
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
