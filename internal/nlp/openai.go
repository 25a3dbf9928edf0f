package nlp

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const openaiKeyURL = "https://platform.openai.com/api-keys"

// OpenAI prompts OpenAI chat-completion models.
type OpenAI struct {
	model  string
	client openai.Client
}

// NewOpenAI creates a client for the given model.
func NewOpenAI(model, key string) (*OpenAI, error) {
	key, err := requireKey(key, openaiKeyURL)
	if err != nil {
		return nil, err
	}
	return &OpenAI{
		model:  model,
		client: openai.NewClient(option.WithAPIKey(key)),
	}, nil
}

func (c *OpenAI) Name() string { return c.model }

func (c *OpenAI) Prompt(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		messages = append(messages, openai.UserMessage(m))
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     openai.ChatModel(c.model),
		Messages:  messages,
		MaxTokens: openai.Int(req.maxTokens()),
	})
	if err != nil {
		return "", fmt.Errorf("openai prompt: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai prompt: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
