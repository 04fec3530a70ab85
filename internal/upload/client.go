// Package upload delegates image hosting to an external media service.
// The application never stores binary image data itself; clients send a
// data URI and get back the hosted URL.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrInvalidImage reports a missing or malformed image payload.
var ErrInvalidImage = errors.New("invalid image data")

// Config configures the media host client. The API key comes from
// configuration, never from an embedded literal.
type Config struct {
	// URL is the media host's upload endpoint.
	URL string

	// APIKey authenticates uploads.
	APIKey string

	// Timeout bounds one upload round trip.
	Timeout time.Duration
}

// Client uploads images to the configured media host.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// New creates a media host client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
	}
}

// Upload sends a data-URI image to the media host and returns the
// hosted URL. The payload must be a base64 data URI with an image MIME
// type; anything else fails with ErrInvalidImage.
func (c *Client) Upload(ctx context.Context, dataURI string) (string, error) {
	if c.url == "" || c.apiKey == "" {
		return "", fmt.Errorf("media host is not configured")
	}

	payload, err := imagePayload(dataURI)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("key", c.apiKey)
	form.Set("image", payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach media host: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read media host response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media host returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode media host response: %w", err)
	}
	if parsed.Data.URL == "" {
		return "", fmt.Errorf("media host response missing url")
	}

	return parsed.Data.URL, nil
}

// imagePayload strips the data-URI header and returns the base64 body.
func imagePayload(dataURI string) (string, error) {
	if !strings.HasPrefix(dataURI, "data:image") {
		return "", ErrInvalidImage
	}
	_, payload, ok := strings.Cut(dataURI, ",")
	if !ok || payload == "" {
		return "", ErrInvalidImage
	}
	return payload, nil
}
