// Package catalog fetches product metadata from the remote catalog service
// and joins it onto sales transactions.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/salespipe-dev/salespipe/internal/model"
)

// DefaultLimit is the page size used when none is configured.
const DefaultLimit = 100

// Client talks to the product catalog HTTP API.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

type productPayload struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
}

type productsResponse struct {
	Products []productPayload `json:"products"`
}

// FetchProducts requests up to limit products in a single call.
// There is no retry and no pagination beyond the limit parameter; callers
// degrade to an empty catalog on error.
func (c *Client) FetchProducts(ctx context.Context, limit int) ([]model.CatalogProduct, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	u.Path = "/products"
	u.RawQuery = url.Values{"limit": {strconv.Itoa(limit)}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching products: unexpected status %s", resp.Status)
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding products response: %w", err)
	}

	products := make([]model.CatalogProduct, 0, len(body.Products))
	for _, p := range body.Products {
		products = append(products, model.CatalogProduct{
			ID:       p.ID,
			Title:    p.Title,
			Category: p.Category,
			Brand:    p.Brand,
			Price:    decimal.NewFromFloat(p.Price),
			Rating:   p.Rating,
		})
	}
	return products, nil
}
