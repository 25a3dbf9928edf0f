package nlp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	mistralKeyURL   = "https://console.mistral.ai/api-keys/"
	mistralEndpoint = "https://api.mistral.ai/v1/chat/completions"

	mistralTemperature = 0.75
	mistralTopP        = 1.0
	mistralTimeout     = 120 * time.Second
	mistralRetryDelay  = 2 * time.Second
)

// Mistral prompts Mistral models over the plain chat-completions HTTP
// API.
type Mistral struct {
	model    string
	key      string
	endpoint string
	client   *http.Client
}

// NewMistral creates a client for the given model.
func NewMistral(model, key string) (*Mistral, error) {
	key, err := requireKey(key, mistralKeyURL)
	if err != nil {
		return nil, err
	}
	return &Mistral{
		model:    model,
		key:      key,
		endpoint: mistralEndpoint,
		client:   &http.Client{Timeout: mistralTimeout},
	}, nil
}

func (c *Mistral) Name() string { return c.model }

func (c *Mistral) Prompt(ctx context.Context, req Request) (string, error) {
	body, err := c.buildBody(req)
	if err != nil {
		return "", fmt.Errorf("mistral prompt: %w", err)
	}

	answer, status, err := c.post(ctx, body)
	if status == http.StatusTooManyRequests {
		// Rate limited; one retry after a short pause.
		select {
		case <-time.After(mistralRetryDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		answer, status, err = c.post(ctx, body)
	}
	if err != nil {
		return "", fmt.Errorf("mistral prompt: %w", err)
	}
	switch {
	case status == http.StatusUnauthorized:
		return "", fmt.Errorf("%w: get an API key at %s", ErrNotAuthenticated, mistralKeyURL)
	case status != http.StatusOK:
		return "", fmt.Errorf("mistral prompt: unexpected status %d", status)
	}
	return answer, nil
}

// buildBody assembles the chat-completions request JSON.
func (c *Mistral) buildBody(req Request) ([]byte, error) {
	body := ""
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		body, err = sjson.Set(body, path, value)
	}

	set("model", c.model)
	set("max_tokens", req.maxTokens())
	set("temperature", mistralTemperature)
	set("top_p", mistralTopP)
	set("safe_prompt", false)
	set("stream", false)
	if req.System != "" {
		set("messages.-1", map[string]any{"role": "system", "content": req.System})
	}
	for _, m := range req.Messages {
		set("messages.-1", map[string]any{"role": "user", "content": m})
	}
	if err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (c *Mistral) post(ctx context.Context, body []byte) (answer string, status int, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", 0, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.key)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}
	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, nil
	}

	content := gjson.GetBytes(data, "choices.0.message.content")
	if !content.Exists() {
		return "", resp.StatusCode, fmt.Errorf("response missing content: %s", data)
	}
	return content.String(), resp.StatusCode, nil
}
