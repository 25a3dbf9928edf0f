package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/taleforge/internal/nlp"
	"github.com/dshills/taleforge/internal/story"
	"github.com/dshills/taleforge/internal/tui"
)

// pageJump is how many chunks PgUp/PgDn and left/right move the focus.
const pageJump = 10

var roomHints = []tui.Hint{
	{Key: "Enter", Label: "Next"},
	{Key: "j/k", Label: "Move"},
	{Key: "r", Label: "Retry"},
	{Key: "e", Label: "Edit"},
	{Key: "a", Label: "Add"},
	{Key: "d", Label: "Del"},
	{Key: "t", Label: "Title"},
	{Key: "s", Label: "Story"},
	{Key: "i", Label: "Instruct"},
	{Key: "q", Label: "Quit"},
}

// storyRoom runs the editing loop for one story until the user leaves.
// The story is saved on every mutation and once more on the way out.
func (a *App) storyRoom(st *story.Story, status string) error {
	view := tui.NewStoryView(a.screen, roomHints, func(format string, args ...any) {
		a.logger.Warn(fmt.Sprintf(format, args...))
	})

	for {
		if msg := a.reloadConfigIfChanged(); msg != "" {
			status = msg
		}
		if err := view.Draw(st, status); err != nil {
			return err
		}
		status = ""

		ev := a.screen.PollKey()
		var err error
		switch {
		case ev.Kind == tui.KeyResize:
			// Redraw picks the new size up.
		case ev.Kind == tui.KeyUp || isRune(ev, 'k'):
			st.FocusUp()
		case ev.Kind == tui.KeyDown || isRune(ev, 'j'):
			st.FocusDown()
		case ev.Kind == tui.KeyPageUp || ev.Kind == tui.KeyLeft:
			st.FocusBy(-pageJump)
		case ev.Kind == tui.KeyPageDown || ev.Kind == tui.KeyRight:
			st.FocusBy(pageJump)
		case ev.Kind == tui.KeyHome:
			st.FocusFirst()
		case ev.Kind == tui.KeyEnd:
			st.FocusEnd()
		case ev.Kind == tui.KeyEnter:
			status, err = a.generateNext(view, st)
		case isRune(ev, 'r'):
			status, err = a.retryChunk(view, st)
		case isRune(ev, 'e'):
			status, err = a.editChunk(st)
		case isRune(ev, 'a'):
			status, err = a.addChunk(st)
		case isRune(ev, 'd'):
			status, err = a.deleteChunk(st)
		case isRune(ev, 't'):
			status, err = a.editTitle(st)
		case isRune(ev, 's'):
			status, err = a.editDetails(st)
		case isRune(ev, 'i'):
			status, err = a.editInstructions(st)
		case isRune(ev, 'q'), ev.Kind == tui.KeyEscape:
			if err := a.save(st); err != nil {
				return err
			}
			return nil
		default:
			status = "Invalid command"
		}

		if errors.Is(err, tui.ErrCancelled) {
			status = ""
			continue
		}
		if err != nil {
			// Generation and editing failures are session events, not
			// reasons to tear the program down.
			a.logger.Error("story action failed", "error", err)
			status = err.Error()
		}
	}
}

func isRune(ev tui.KeyEvent, r rune) bool {
	return ev.Kind == tui.KeyRune && ev.Rune == r
}

func (a *App) save(st *story.Story) error {
	return a.store.SaveStory(context.Background(), st)
}

func (a *App) generateNext(view *tui.StoryView, st *story.Story) (string, error) {
	if err := view.Draw(st, "Generating more text..."); err != nil {
		return "", err
	}
	ctx, cancel := promptCtx()
	defer cancel()

	chunk, err := a.handler.Continue(ctx, st)
	if err != nil {
		return "", err
	}
	st.AddChunk(chunk)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "New text generated", nil
}

// retryChunk regenerates the focused chunk. Only the last chunk can be
// retried; rewriting the middle would invalidate everything after it.
func (a *App) retryChunk(view *tui.StoryView, st *story.Story) (string, error) {
	if !st.IsLastFocused() {
		return "Can only retry the last part", nil
	}
	st.DeleteActiveChunk()
	st.FocusEnd()
	return a.generateNext(view, st)
}

func (a *App) editChunk(st *story.Story) (string, error) {
	if len(st.Chunks) == 0 {
		return "Nothing to edit", nil
	}
	edited, err := a.screen.EditText(st.ActiveChunk())
	if err != nil {
		return "", err
	}
	st.ReplaceActiveChunk(edited)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Part updated", nil
}

func (a *App) addChunk(st *story.Story) (string, error) {
	line, err := a.screen.ReadLine("Add a new line: ")
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", nil
	}
	st.AddChunk(line)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Line added", nil
}

func (a *App) deleteChunk(st *story.Story) (string, error) {
	if len(st.Chunks) == 0 {
		return "Nothing to delete", nil
	}
	ok, err := a.screen.Confirm("Delete the selected part?")
	if err != nil || !ok {
		return "", err
	}
	st.DeleteActiveChunk()
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Part deleted", nil
}

func (a *App) editTitle(st *story.Story) (string, error) {
	title, err := a.screen.ReadLine("New title: ")
	if err != nil {
		return "", err
	}
	if title == "" {
		return "Title not updated", nil
	}
	st.SetTitle(title)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Title updated", nil
}

func (a *App) editDetails(st *story.Story) (string, error) {
	edited, err := a.screen.EditText(st.Details)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(story.StripComments(edited)) == "" {
		edited = nlp.DefaultDetails
	}
	st.SetDetails(edited)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Story details updated", nil
}

func (a *App) editInstructions(st *story.Story) (string, error) {
	edited, err := a.screen.EditText(st.Instructions)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(story.StripComments(edited)) == "" {
		edited = nlp.DefaultInstructions
	}
	st.SetInstructions(edited)
	if err := a.save(st); err != nil {
		return "", err
	}
	return "Instructions updated", nil
}
