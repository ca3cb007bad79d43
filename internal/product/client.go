// Package product talks to the external product lookup service.
package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roomplanner/internal/geom"
)

// Info is the product metadata the lookup service returns. Dimensions are in
// meters.
type Info struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Width    float32 `json:"width"`
	Height   float32 `json:"height"`
	Depth    float32 `json:"depth"`
	ImageURL string  `json:"imageUrl,omitempty"`
	ModelURL string  `json:"modelUrl,omitempty"`
}

// Dimensions returns the product's real-world extent.
func (p Info) Dimensions() geom.Dimensions {
	return geom.Dimensions{Width: p.Width, Height: p.Height, Depth: p.Depth}
}

// Client fetches product metadata by id.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the lookup service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
}

// Lookup fetches metadata for one product. Non-2xx responses and malformed
// bodies are failures; callers fall back to placeholder geometry.
func (c *Client) Lookup(ctx context.Context, productID int64) (Info, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Info{}, fmt.Errorf("product lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Info{}, fmt.Errorf("product lookup: %s", resp.Status)
	}

	var info Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return Info{}, fmt.Errorf("product lookup: decode: %w", err)
	}
	if info.Name == "" || info.Width <= 0 || info.Height <= 0 || info.Depth <= 0 {
		return Info{}, fmt.Errorf("product lookup: incomplete metadata for %d", productID)
	}
	return info, nil
}
