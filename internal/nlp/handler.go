package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/taleforge/internal/story"
)

// DefaultInstructions is seeded into new stories. Lines starting with
// '%' are stripped before the text reaches the model.
const DefaultInstructions = `% This is the instructions that is given to the AI before the story.
% - All lines starting with percent (%) are removed for the AI.
% - Leave the instructions blank to reset to the default instructions.

You are an excellent story writer assistant, writing remarkable fantasy
fiction. Do not reply with dialog, only with the answers directly.

Use markdown format, but use formatting sparsely.

Writing Guidelines: Use second person perspective and present tense,
unless the story starts differently. Use writing techniques to bring
the world and characters to life. Vary what phrases you use. Be
specific and to the point, and focus on the action in the story. Let
the characters develop, and bring out their motivations, relationships,
thoughts and complexity. Keep the story on track, but be creative and
allow surprising subplots. Include dialog with the characters. Avoid
repetition and summarisation. Avoid repeating phrases. Use humour.

If a paragraph starts with "INSTRUCT:", it is not a part of the story,
but instructions from the user that you must follow when continuing the
story. Do not add instructions on behalf of the user. Do not include
the word INSTRUCT in the story.
`

// DefaultDetails is seeded into new stories as the editable summary.
const DefaultDetails = `% Story summary and details.
%
% This is where you could put details that are important for the story.
% For example a summary of how the story should go, or details about
% certain characters.
%
% All lines starting with percent (%) are ignored.

This is a story about you, going on an adventurous journey. You will
experience a lot of things, and will be surprised from time to time.
`

// Token budgets for the specialised prompts.
const (
	conceptMaxTokens = 800
	titleMaxTokens   = 20
)

// Handler sits between the story and the provider client: it strips
// internal comments, cleans whitespace, and phrases the actual prompts.
type Handler struct {
	client Client
}

// NewHandler wraps a provider client.
func NewHandler(client Client) *Handler {
	return &Handler{client: client}
}

// ModelName names the underlying model, for the status line.
func (h *Handler) ModelName() string { return h.client.Name() }

func (h *Handler) prompt(ctx context.Context, req Request) (string, error) {
	req.System = story.StripComments(req.System)
	for i, m := range req.Messages {
		req.Messages[i] = story.CleanText(m)
	}
	answer, err := h.client.Prompt(ctx, req)
	if err != nil {
		return "", err
	}
	return story.CleanText(answer), nil
}

// instructions falls back to the defaults when the story has none.
func instructions(st *story.Story) string {
	if strings.TrimSpace(story.StripComments(st.Instructions)) == "" {
		return DefaultInstructions
	}
	return st.Instructions
}

// storyPreamble phrases the shared title/details context.
func storyPreamble(st *story.Story) []string {
	msgs := []string{fmt.Sprintf("\n---\nThe title of the story: '%s'", st.Title)}
	if details := strings.TrimSpace(story.StripComments(st.Details)); details != "" {
		msgs = append(msgs, "\n---\nImportant details about the story:", details)
	}
	return msgs
}

// Intro asks the model to open the story.
func (h *Handler) Intro(ctx context.Context, st *story.Story) (string, error) {
	msgs := storyPreamble(st)
	msgs = append(msgs, "\n---\nGive me three sentences that start this story.")
	return h.prompt(ctx, Request{System: instructions(st), Messages: msgs})
}

// Continue asks the model for the next chunk of the story.
func (h *Handler) Continue(ctx context.Context, st *story.Story) (string, error) {
	msgs := []string{"Generate two more sentences, continuing the given story:"}
	msgs = append(msgs, storyPreamble(st)...)
	msgs = append(msgs, "\n---\n<THE-STORY>:\n")
	msgs = append(msgs, st.Chunks...)
	msgs = append(msgs, "\n\n</THE-STORY>")
	return h.prompt(ctx, Request{System: instructions(st), Messages: msgs})
}

// SuggestConcept asks the model for a fresh story idea.
func (h *Handler) SuggestConcept(ctx context.Context) (string, error) {
	return h.prompt(ctx, Request{
		Messages: []string{
			`Give me 100-200 words describing an idea for one exciting
			fantasy story. Only return one story. Return a summary of the
			story, including a chapter layout and character descriptions.
			Do not start the story.`,
		},
		MaxTokens: conceptMaxTokens,
	})
}

// SuggestTitle asks the model to title a concept or summary.
func (h *Handler) SuggestTitle(ctx context.Context, concept string) (string, error) {
	title, err := h.prompt(ctx, Request{
		Messages: []string{
			"Give me only one title, max 40 characters, for a story with " +
				"the given concept, without any other feedback and no newlines: " + concept,
		},
		MaxTokens: titleMaxTokens,
	})
	if err != nil {
		return "", err
	}
	// Some models pad short answers with newlines; models also are not
	// good at counting, so trim with slack.
	title = strings.ReplaceAll(title, "\n", "")
	if len(title) > 50 {
		title = title[:50]
	}
	return strings.TrimSpace(title), nil
}
