// Package imagegen talks to the hosted chat-completions endpoint that turns a
// prompt into an image URL.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pixelforge/image-studio/internal/core/domain"
)

const (
	DefaultURL   = "https://oi-server.onrender.com/chat/completions"
	DefaultModel = "replicate/black-forest-labs/flux-1.1-pro"

	// maxBodyBytes bounds how much of an upstream reply is read.
	maxBodyBytes = 1 << 20
)

type Config struct {
	URL        string
	APIKey     string
	CustomerID string
	Model      string
	// Timeout of zero means the call is bounded only by ctx.
	Timeout time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client implements ports.ImageGenerator with a single attempt per call.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

// Generate posts enhancedPrompt upstream and returns the image URL found in
// the first choice. A non-2xx reply yields *domain.UpstreamError.
func (c *Client) Generate(ctx context.Context, enhancedPrompt string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:    c.cfg.Model,
		Messages: []chatMessage{{Role: "user", Content: enhancedPrompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	if c.cfg.CustomerID != "" {
		req.Header.Set("customerId", c.cfg.CustomerID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", domain.ErrGenerationFailed, err)
	}

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream generation response")

	if resp.StatusCode/100 != 2 {
		return "", &domain.UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}
	if len(out.Choices) == 0 {
		return "", domain.ErrNoImageURL
	}
	url := strings.TrimSpace(out.Choices[0].Message.Content)
	if url == "" {
		return "", domain.ErrNoImageURL
	}
	return url, nil
}
