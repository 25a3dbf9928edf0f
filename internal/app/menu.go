package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/taleforge/internal/config"
	"github.com/dshills/taleforge/internal/nlp"
	"github.com/dshills/taleforge/internal/story"
	"github.com/dshills/taleforge/internal/tui"
)

func (a *App) mainMenu() error {
	items := []tui.MenuItem{
		{Key: 'n', Label: "New story"},
		{Key: 'l', Label: "Load story"},
		{Key: 'c', Label: "Write default config files"},
	}
	for {
		menu := tui.NewMenu(a.screen, "", items)
		choice, err := menu.Run()
		if errors.Is(err, tui.ErrCancelled) {
			return ErrQuit
		}
		if err != nil {
			return err
		}

		switch choice.Key {
		case 'n':
			err = a.newStory()
		case 'l':
			err = a.loadStory()
		case 'c':
			err = a.writeConfig()
		}
		if err != nil && !errors.Is(err, tui.ErrCancelled) {
			return err
		}
	}
}

// newStory asks for a title (or has the model invent the whole
// concept), seeds the defaults, and opens the story room with a
// generated introduction.
func (a *App) newStory() error {
	title, err := a.screen.ReadLine("An initial title for the story? (empty for a suggestion) ")
	if err != nil {
		return err
	}

	st := story.New(title)
	st.Instructions = nlp.DefaultInstructions
	st.Details = nlp.DefaultDetails

	ctx, cancel := promptCtx()
	defer cancel()

	if title == "" {
		concept, err := a.handler.SuggestConcept(ctx)
		if err != nil {
			return fmt.Errorf("suggesting concept: %w", err)
		}
		st.Details += "\n" + concept
		suggested, err := a.handler.SuggestTitle(ctx, concept)
		if err != nil {
			return fmt.Errorf("suggesting title: %w", err)
		}
		st.SetTitle(suggested)
	}

	intro, err := a.handler.Intro(ctx, st)
	if err != nil {
		return fmt.Errorf("generating introduction: %w", err)
	}
	st.AddChunk(intro)

	saveCtx := context.Background()
	if err := a.store.CreateStory(saveCtx, st); err != nil {
		return err
	}
	a.logger.Info("story created", "id", st.ID, "title", st.Title)
	return a.storyRoom(st, "Started new story")
}

// loadStory lets the user pick an existing story from the table.
func (a *App) loadStory() error {
	summaries, err := a.store.ListStories(context.Background())
	if err != nil {
		return err
	}

	rows := make([]tui.TableRow, len(summaries))
	for i, s := range summaries {
		rows[i] = tui.TableRow{Cells: []string{
			fmt.Sprintf("%5d", s.ID),
			fmt.Sprintf("%-60s", s.Title),
			fmt.Sprintf("%6d", s.ChunkCnt),
		}}
	}

	picked, err := tui.NewTable(a.screen, "Pick a story to load", rows).Run()
	if err != nil {
		return err
	}

	st, err := a.store.GetStory(context.Background(), summaries[picked].ID)
	if err != nil {
		return err
	}
	a.logger.Info("story loaded", "id", st.ID, "title", st.Title)
	return a.storyRoom(st, "Story loaded")
}

// writeConfig materializes default config and secrets files for the
// user to fill in. Existing files are left alone.
func (a *App) writeConfig() error {
	if err := config.WriteDefaults(a.opts.ConfigPath, a.opts.SecretsPath); err != nil {
		a.logger.Warn("writing config files", "error", err)
	}
	return nil
}
