package nlp

import (
	"context"
	"hash/fnv"
)

// mockReplies are the canned continuations the mock model cycles
// through.
var mockReplies = []string{
	"The guy asked around.",
	"The girl looked at you.",
	`"What?!" she asked, looking at you.`,
	`"Well well well," he said.`,
}

// Mock simulates a text-generation service. The reply is a pure
// function of the prompt, so tests stay deterministic.
type Mock struct {
	// Reply, when set, is returned verbatim for every prompt.
	Reply string
}

// NewMock creates a mock client. A non-empty extra pins every reply to
// that string.
func NewMock(extra string) *Mock {
	return &Mock{Reply: extra}
}

func (c *Mock) Name() string { return "mock" }

func (c *Mock) Prompt(_ context.Context, req Request) (string, error) {
	if c.Reply != "" {
		return c.Reply, nil
	}
	h := fnv.New32a()
	h.Write([]byte(req.joined()))
	return mockReplies[h.Sum32()%uint32(len(mockReplies))], nil
}
