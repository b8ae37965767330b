package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Client produces raw model text for a prompt pair.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// HTTPClient talks to an OpenAI-compatible chat-completions endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewHTTPClient constructs an HTTPClient.
func NewHTTPClient(baseURL, apiKey, model string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt and returns the first choice's text.
func (c *HTTPClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, span := otel.Tracer("ameo-assets/ai").Start(ctx, "ai.complete")
	defer span.End()
	span.SetAttributes(attribute.String("ai.model", c.model))

	payload := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai request: %w", err)
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode ai response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return "", fmt.Errorf("ai provider: %s", parsed.Error.Message)
		}
		return "", fmt.Errorf("ai provider: status %d", resp.StatusCode)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("ai provider: empty choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
