package nlp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

func testMistral(t *testing.T, handler http.HandlerFunc) *Mistral {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewMistral("open-mistral-nemo", "test-key")
	if err != nil {
		t.Fatalf("NewMistral: %v", err)
	}
	c.endpoint = srv.URL
	return c
}

func TestMistralPrompt(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	c := testMistral(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"The cave breathes."}}]}`))
	})

	got, err := c.Prompt(context.Background(), Request{
		System:   "be terse",
		Messages: []string{"continue the story"},
	})
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != "The cave breathes." {
		t.Errorf("answer = %q", got)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}

	body := gjson.ParseBytes(gotBody)
	if body.Get("model").String() != "open-mistral-nemo" {
		t.Errorf("model = %q", body.Get("model").String())
	}
	if body.Get("max_tokens").Int() != DefaultMaxTokens {
		t.Errorf("max_tokens = %d", body.Get("max_tokens").Int())
	}
	msgs := body.Get("messages").Array()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %s", len(msgs), gotBody)
	}
	if msgs[0].Get("role").String() != "system" || msgs[1].Get("role").String() != "user" {
		t.Errorf("message roles wrong: %s", gotBody)
	}
}

func TestMistralRetriesOnRateLimit(t *testing.T) {
	calls := 0
	c := testMistral(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"second try"}}]}`))
	})

	start := time.Now()
	got, err := c.Prompt(context.Background(), Request{Messages: []string{"go"}})
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if got != "second try" {
		t.Errorf("answer = %q", got)
	}
	if calls != 2 {
		t.Errorf("expected exactly one retry, got %d calls", calls)
	}
	if time.Since(start) < mistralRetryDelay {
		t.Error("retry should wait before resending")
	}
}

func TestMistralUnauthorized(t *testing.T) {
	c := testMistral(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := c.Prompt(context.Background(), Request{Messages: []string{"go"}}); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestMistralMalformedResponse(t *testing.T) {
	c := testMistral(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":true}`))
	})
	if _, err := c.Prompt(context.Background(), Request{Messages: []string{"go"}}); err == nil {
		t.Error("expected an error for a response without content")
	}
}
