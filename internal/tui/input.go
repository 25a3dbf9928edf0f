package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ReadLine asks for one line of input on the status row. Escape
// cancels.
func (s *Screen) ReadLine(prompt string) (string, error) {
	_, height := s.Size()
	y := height - 2
	var buf []rune
	for {
		s.fillLine(y, styleStory)
		x := s.setText(1, y, prompt, styleStatus)
		s.setText(x, y, string(buf), styleStory)
		s.Show()

		ev := s.PollKey()
		switch ev.Kind {
		case KeyEnter:
			return strings.TrimSpace(string(buf)), nil
		case KeyEscape:
			return "", ErrCancelled
		case KeyBackspace:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case KeyRune:
			if ev.Rune != 0 {
				buf = append(buf, ev.Rune)
			}
		case KeyResize:
			_, height = s.Size()
			y = height - 2
		}
	}
}

// Confirm asks a yes/no question; only 'y' confirms.
func (s *Screen) Confirm(question string) (bool, error) {
	answer, err := s.ReadLine(question + " (y/N): ")
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// EditText hands the text to the user's $EDITOR in a temp file and
// returns the edited result.
func (s *Screen) EditText(oldText string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmp, err := os.CreateTemp("", "taleforge-*.md")
	if err != nil {
		return "", fmt.Errorf("editing text: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(oldText); err != nil {
		tmp.Close()
		return "", fmt.Errorf("editing text: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("editing text: %w", err)
	}

	err = s.Suspend(func() error {
		cmd := exec.Command(editor, path)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	})
	if err != nil {
		return "", fmt.Errorf("running editor %s: %w", editor, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("editing text: %w", err)
	}
	return string(data), nil
}
