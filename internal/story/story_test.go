package story

import (
	"reflect"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a  b\tc", "a b c"},
		{"one\n\n\n\ntwo", "one\n\ntwo"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStripComments(t *testing.T) {
	in := "% internal note\nkeep me\n  % indented note\nand me"
	want := "keep me\nand me"
	if got := StripComments(in); got != want {
		t.Errorf("StripComments = %q, want %q", got, want)
	}
}

func TestAddChunkFocusesNewChunk(t *testing.T) {
	s := New("t")
	s.AddChunk("one")
	s.AddChunk("two")
	if !s.IsLastFocused() {
		t.Error("expected focus on the newest chunk")
	}
	if s.ActiveChunk() != "two" {
		t.Errorf("active chunk = %q, want %q", s.ActiveChunk(), "two")
	}
}

func TestFocusMovement(t *testing.T) {
	s := New("t")
	for _, c := range []string{"a", "b", "c"} {
		s.AddChunk(c)
	}

	s.FocusUp()
	if s.ActiveChunk() != "b" {
		t.Errorf("after up: active = %q, want b", s.ActiveChunk())
	}
	s.FocusUp()
	s.FocusUp() // already at the top; stays
	if !s.IsFirstFocused() {
		t.Error("expected first chunk focused")
	}
	s.FocusDown()
	s.FocusDown()
	if s.Focus != FocusLast {
		t.Errorf("expected sentinel focus at the end, got %d", s.Focus)
	}
	s.FocusBy(-10)
	if !s.IsFirstFocused() {
		t.Error("big jump up should clamp at the first chunk")
	}
	s.FocusEnd()
	if !s.IsLastFocused() {
		t.Error("FocusEnd should land on the last chunk")
	}
}

func TestDeleteActiveChunk(t *testing.T) {
	s := New("t")
	for _, c := range []string{"a", "b", "c"} {
		s.AddChunk(c)
	}
	s.FocusUp() // on "b"
	s.DeleteActiveChunk()
	if !reflect.DeepEqual(s.Chunks, []string{"a", "c"}) {
		t.Errorf("chunks = %v, want [a c]", s.Chunks)
	}
	if s.ActiveChunk() != "a" {
		t.Errorf("focus should move up, active = %q", s.ActiveChunk())
	}
}

func TestEmptyStory(t *testing.T) {
	s := New("t")
	if s.ResolvedFocus() != -1 {
		t.Errorf("empty story focus = %d, want -1", s.ResolvedFocus())
	}
	if s.ActiveChunk() != "" {
		t.Error("empty story has no active chunk")
	}
	s.DeleteActiveChunk() // must not panic
	s.FocusUp()
	s.FocusDown()
}

func TestReplaceActiveChunk(t *testing.T) {
	s := New("t")
	s.AddChunk("old")
	s.ReplaceActiveChunk("new   text")
	if s.ActiveChunk() != "new text" {
		t.Errorf("active = %q, want cleaned replacement", s.ActiveChunk())
	}
}
