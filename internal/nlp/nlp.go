// Package nlp talks to text-generation services. Each provider hides
// behind the Client interface; the Handler layers prompt construction
// and text hygiene on top.
package nlp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultMaxTokens caps a generation when the request does not say
// otherwise. Roughly 25-50 words, a couple of sentences.
const DefaultMaxTokens = 100

// ErrNotAuthenticated indicates a missing or placeholder API key.
var ErrNotAuthenticated = errors.New("nlp: not authenticated")

// ErrUnknownModel indicates a model name no provider claims.
var ErrUnknownModel = errors.New("nlp: unknown model")

// Request is one generation call.
type Request struct {
	// System carries the standing instructions for the model.
	System string
	// Messages is the user content, sent in order.
	Messages []string
	// MaxTokens caps the response length; 0 means DefaultMaxTokens.
	MaxTokens int64
}

func (r Request) maxTokens() int64 {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

// joined returns the user messages as a single newline-joined prompt,
// for providers that take one text blob.
func (r Request) joined() string {
	return strings.Join(r.Messages, "\n")
}

// Client generates a continuation for a request.
type Client interface {
	// Name returns the provider's model name, for display.
	Name() string
	// Prompt performs one generation round trip.
	Prompt(ctx context.Context, req Request) (string, error)
}

// Keys holds the per-provider API keys. A key equal to "" or the
// placeholder "CHANGEME" counts as absent.
type Keys struct {
	OpenAI    string
	Anthropic string
	Gemini    string
	Mistral   string
}

// Placeholder is the value written into fresh secrets files; it is
// rejected as an API key.
const Placeholder = "CHANGEME"

func requireKey(key, keyURL string) (string, error) {
	if key == "" || key == Placeholder {
		return "", fmt.Errorf("%w: get an API key at %s", ErrNotAuthenticated, keyURL)
	}
	return key, nil
}

type factory func(model, extra string, keys Keys) (Client, error)

// models maps model names to provider constructors, mirroring the set
// of services the tool has grown support for.
var models = map[string]factory{
	"gemini-2.0-flash": newGeminiFactory,
	"gemini-1.5-flash": newGeminiFactory,
	"gemini-1.5-pro":   newGeminiFactory,
	"gpt-4o-mini":      newOpenAIFactory,
	"gpt-4o":           newOpenAIFactory,
	"claude-sonnet-4-0": func(model, extra string, keys Keys) (Client, error) {
		return NewAnthropic(model, keys.Anthropic)
	},
	"claude-3-5-haiku-latest": func(model, extra string, keys Keys) (Client, error) {
		return NewAnthropic(model, keys.Anthropic)
	},
	"open-mistral-nemo":    newMistralFactory,
	"mistral-large-latest": newMistralFactory,
	"mock": func(model, extra string, keys Keys) (Client, error) {
		return NewMock(extra), nil
	},
}

func newGeminiFactory(model, extra string, keys Keys) (Client, error) {
	return NewGemini(model, keys.Gemini)
}

func newOpenAIFactory(model, extra string, keys Keys) (Client, error) {
	return NewOpenAI(model, keys.OpenAI)
}

func newMistralFactory(model, extra string, keys Keys) (Client, error) {
	return NewMistral(model, keys.Mistral)
}

// NewClient resolves a configured model name, "name" or "name:extra",
// to a provider client.
func NewClient(model string, keys Keys) (Client, error) {
	name, extra, _ := strings.Cut(model, ":")
	f, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, name)
	}
	return f(name, extra, keys)
}

// ModelNames lists the configurable model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
