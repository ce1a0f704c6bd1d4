package bgremoval

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/picpatch/PicPatch/internal/pkg/env"
)

// DefaultEndpoint is the remove.bg style API the client talks to.
const DefaultEndpoint = "https://api.remove.bg/v1.0/removebg"

// ErrNoAPIKey is returned when the client is used without a configured key.
var ErrNoAPIKey = errors.New("bgremoval: no API key configured")

// APIError carries the error the transform service reported. Its title is
// shown to the user verbatim when present.
type APIError struct {
	StatusCode int
	Title      string
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("background removal failed (%d): %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("background removal failed (%d)", e.StatusCode)
}

// errorPayload mirrors the service's error response body:
// {"errors":[{"title":"..."}]}
type errorPayload struct {
	Errors []struct {
		Title string `json:"title"`
	} `json:"errors"`
}

// Config holds the transform service configuration
type Config struct {
	APIKey   string
	Endpoint string
}

// LoadConfig loads the transform service configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		APIKey:   env.GetEnv("REMOVEBG_API_KEY", ""),
		Endpoint: env.GetEnv("REMOVEBG_ENDPOINT", DefaultEndpoint),
	}
}

// Client calls the external background-removal transform service.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new transform service client
func NewClient(cfg *Config) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Process sends image bytes to the transform service and returns the
// processed image bytes. Non-success responses surface the service's
// reported error title when available.
func (c *Client) Process(ctx context.Context, image []byte) ([]byte, error) {
	if c.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image_file", "image")
	if err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Api-Key", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transform service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload errorPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload.Errors) > 0 {
			apiErr.Title = payload.Errors[0].Title
		}
		return nil, apiErr
	}

	result, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transform result: %w", err)
	}
	return result, nil
}

// FetchImage downloads the source image bytes for processing.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
