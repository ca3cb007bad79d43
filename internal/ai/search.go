package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roomplanner/internal/geom"
	"roomplanner/internal/product"
)

// SearchClient asks the search service for the single product that best fits
// the current room.
type SearchClient struct {
	url  string
	http *http.Client
}

// NewSearchClient returns a client for the search service at url.
func NewSearchClient(url string) *SearchClient {
	return &SearchClient{url: url, http: http.DefaultClient}
}

type searchRequest struct {
	Category       string             `json:"category"`
	Image          string             `json:"image"`
	RoomDimensions geom.Dimensions    `json:"roomDimensions"`
	FurnitureList  []FurnitureSummary `json:"furnitureList"`
}

// Search submits the scene context and a furniture category and returns the
// suggested product.
func (c *SearchClient) Search(ctx context.Context, category, snapshotBase64 string, room geom.Dimensions, furniture []FurnitureSummary) (product.Info, error) {
	body, err := json.Marshal(searchRequest{
		Category:       category,
		Image:          snapshotBase64,
		RoomDimensions: room,
		FurnitureList:  furniture,
	})
	if err != nil {
		return product.Info{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return product.Info{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return product.Info{}, fmt.Errorf("ai search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return product.Info{}, fmt.Errorf("ai search: %s", resp.Status)
	}

	var info product.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return product.Info{}, fmt.Errorf("ai search: decode: %w", err)
	}
	if info.ID == 0 || info.Name == "" {
		return product.Info{}, fmt.Errorf("ai search: no product in response")
	}
	return info, nil
}
