package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roomplanner/internal/geom"
)

// ChatMessage is one turn of the advisor conversation.
type ChatMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// ChatClient talks to the arrangement-advice service.
type ChatClient struct {
	url  string
	http *http.Client
}

// NewChatClient returns a client for the chat service at url.
func NewChatClient(url string) *ChatClient {
	return &ChatClient{url: url, http: http.DefaultClient}
}

type chatRequest struct {
	Text           []ChatMessage      `json:"text"`
	ImageBase64    string             `json:"image_base64"`
	RoomDimensions geom.Dimensions    `json:"roomDimensions"`
	FurnitureList  []FurnitureSummary `json:"furnitureList"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// Send posts the conversation so far plus the current scene context and
// returns the model's reply.
func (c *ChatClient) Send(ctx context.Context, history []ChatMessage, snapshotBase64 string, room geom.Dimensions, furniture []FurnitureSummary) (string, error) {
	body, err := json.Marshal(chatRequest{
		Text:           history,
		ImageBase64:    snapshotBase64,
		RoomDimensions: room,
		FurnitureList:  furniture,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("ai chat: %s", resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("ai chat: decode: %w", err)
	}
	if out.Reply == "" {
		return "", fmt.Errorf("ai chat: empty reply")
	}
	return out.Reply, nil
}
