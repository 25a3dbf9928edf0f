package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicKeyURL = "https://console.anthropic.com/settings/keys"

// Anthropic prompts Anthropic message models.
type Anthropic struct {
	model  string
	client anthropic.Client
}

// NewAnthropic creates a client for the given model.
func NewAnthropic(model, key string) (*Anthropic, error) {
	key, err := requireKey(key, anthropicKeyURL)
	if err != nil {
		return nil, err
	}
	return &Anthropic{
		model:  model,
		client: anthropic.NewClient(option.WithAPIKey(key)),
	}, nil
}

func (c *Anthropic) Name() string { return c.model }

func (c *Anthropic) Prompt(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: req.maxTokens(),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.joined())),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic prompt: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
