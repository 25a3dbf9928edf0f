package nlp

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewClientUnknownModel(t *testing.T) {
	if _, err := NewClient("sorcery-9000", Keys{}); !errors.Is(err, ErrUnknownModel) {
		t.Errorf("expected ErrUnknownModel, got %v", err)
	}
}

func TestNewClientMissingKey(t *testing.T) {
	tests := []struct {
		model string
		keys  Keys
	}{
		{"gpt-4o-mini", Keys{}},
		{"gemini-1.5-flash", Keys{Gemini: Placeholder}},
		{"claude-sonnet-4-0", Keys{}},
		{"open-mistral-nemo", Keys{Mistral: ""}},
	}
	for _, tt := range tests {
		if _, err := NewClient(tt.model, tt.keys); !errors.Is(err, ErrNotAuthenticated) {
			t.Errorf("%s: expected ErrNotAuthenticated, got %v", tt.model, err)
		}
	}
}

func TestNewClientMockWithExtra(t *testing.T) {
	c, err := NewClient("mock:always this", Keys{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got, err := c.Prompt(context.Background(), Request{Messages: []string{"hi"}})
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != "always this" {
		t.Errorf("reply = %q, want pinned extra", got)
	}
}

func TestMockDeterministic(t *testing.T) {
	c := NewMock("")
	ctx := context.Background()
	req := Request{Messages: []string{"once upon a time"}}
	a, _ := c.Prompt(ctx, req)
	b, _ := c.Prompt(ctx, req)
	if a != b {
		t.Errorf("mock replies differ for identical prompt: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("mock reply is empty")
	}
}

func TestModelNamesSortedAndComplete(t *testing.T) {
	names := ModelNames()
	if len(names) != len(models) {
		t.Fatalf("expected %d names, got %d", len(models), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q >= %q", names[i-1], names[i])
		}
	}
	found := false
	for _, n := range names {
		if n == "mock" {
			found = true
		}
	}
	if !found {
		t.Error("mock model missing from listing")
	}
}

func TestRequestDefaults(t *testing.T) {
	if got := (Request{}).maxTokens(); got != DefaultMaxTokens {
		t.Errorf("default max tokens = %d, want %d", got, DefaultMaxTokens)
	}
	if got := (Request{MaxTokens: 7}).maxTokens(); got != 7 {
		t.Errorf("max tokens = %d, want 7", got)
	}
	joined := Request{Messages: []string{"a", "b"}}.joined()
	if joined != "a\nb" {
		t.Errorf("joined = %q", joined)
	}
	if !strings.Contains(joined, "\n") {
		t.Error("messages should join with newlines")
	}
}
