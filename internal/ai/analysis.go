package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"roomplanner/internal/geom"
)

// DetectedFurniture is one furniture placement the photo analysis returns.
// Rotation is in radians.
type DetectedFurniture struct {
	Name      string    `json:"name"`
	PositionX float32   `json:"positionX"`
	PositionY float32   `json:"positionY"`
	PositionZ float32   `json:"positionZ"`
	Width     float32   `json:"width"`
	Height    float32   `json:"height"`
	Depth     float32   `json:"depth"`
	Rotation  geom.Vec3 `json:"rotation"`
}

// RoomLayout is the full analysis result: estimated room dimensions plus the
// furniture the service recognized in the photo.
type RoomLayout struct {
	RoomDimensions geom.Dimensions     `json:"roomDimensions"`
	FurnitureData  []DetectedFurniture `json:"furnitureData"`
}

// AnalysisClient sends room photos for analysis.
type AnalysisClient struct {
	url  string
	http *http.Client
}

// NewAnalysisClient returns a client for the analysis service at url.
func NewAnalysisClient(url string) *AnalysisClient {
	return &AnalysisClient{url: url, http: http.DefaultClient}
}

// Analyze uploads a JPEG-encoded room photo and returns the detected layout.
// The caller rebuilds the arrangement from it only on explicit confirmation.
func (c *AnalysisClient) Analyze(ctx context.Context, imageJPEG []byte) (RoomLayout, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("image", "room.jpg")
	if err != nil {
		return RoomLayout{}, err
	}
	if _, err := io.Copy(fw, bytes.NewReader(imageJPEG)); err != nil {
		return RoomLayout{}, err
	}
	if err := mw.Close(); err != nil {
		return RoomLayout{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return RoomLayout{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return RoomLayout{}, fmt.Errorf("room analysis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return RoomLayout{}, fmt.Errorf("room analysis: %s", resp.Status)
	}

	var layout RoomLayout
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		return RoomLayout{}, fmt.Errorf("room analysis: decode: %w", err)
	}
	return layout, nil
}
