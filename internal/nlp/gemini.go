package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiKeyURL = "https://aistudio.google.com/app/apikey"

// Gemini generation knobs. Google's default safety thresholds block a
// lot of ordinary fiction, so they are switched off.
const (
	geminiTemperature = 0.75
	geminiTopP        = 1.0
)

// Gemini prompts Google generative models.
type Gemini struct {
	model string
	key   string
}

// NewGemini creates a client for the given model.
func NewGemini(model, key string) (*Gemini, error) {
	key, err := requireKey(key, geminiKeyURL)
	if err != nil {
		return nil, err
	}
	return &Gemini{model: model, key: key}, nil
}

func (c *Gemini) Name() string { return c.model }

func (c *Gemini) Prompt(ctx context.Context, req Request) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(c.key))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	model.SetCandidateCount(1)
	model.SetMaxOutputTokens(int32(req.maxTokens()))
	model.SetTemperature(geminiTemperature)
	model.SetTopP(geminiTopP)
	model.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.joined()))
	if err != nil {
		return "", fmt.Errorf("gemini prompt: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini prompt: blocked or empty response: %v", resp.PromptFeedback)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}
