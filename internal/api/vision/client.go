// Package vision is a thin HTTP client for the external fruit
// classification provider.
package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ErrProvider wraps any transport or non-200 failure from the provider so
// callers can map the whole class to a single upstream-failure response.
var ErrProvider = errors.New("vision provider failure")

// Classification is the provider's verdict on an image.
type Classification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type classifyRequest struct {
	Image string `json:"image"`
}

// Client talks to the classification endpoint. Zero value is not usable;
// construct with NewClient.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify submits an image (base64 payload or URL, provider's choice) and
// returns the top label. Every failure mode wraps ErrProvider.
func (c *Client) Classify(ctx context.Context, image string) (Classification, error) {
	body, err := json.Marshal(classifyRequest{Image: image})
	if err != nil {
		return Classification{}, fmt.Errorf("%w: encode request: %v", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return Classification{}, fmt.Errorf("%w: build request: %v", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("%w: status %d", ErrProvider, resp.StatusCode)
	}

	var out Classification
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Classification{}, fmt.Errorf("%w: decode response: %v", ErrProvider, err)
	}
	return out, nil
}
