package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, '■', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != '■' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red block", cell)
	}

	// Out of bounds should be silent
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(100, 0, 'A', ColorRed)

	if got := s.GetCell(-1, 0); got.Rune != ' ' || got.Color != ColorDefault {
		t.Errorf("Out of bounds GetCell should return a blank cell, got %+v", got)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawTextColored(0, 0, "XXXX", ColorBlue)

	s.Clear()

	for x := 0; x < 4; x++ {
		if c := s.GetCell(x, 0); c != blankCell {
			t.Errorf("After Clear, expected blank cell at (%d, 0), got %+v", x, c)
		}
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3), ColorGray)

	expected := "┌───┐\n│   │\n└───┘"
	if got := s.String(); got != expected {
		t.Errorf("DrawBox produced:\n%s\nexpected:\n%s", got, expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corners should carry the requested color")
	}
}

func TestScreenResizePreservesContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.Resize(6, 3)

	if !strings.HasPrefix(s.Row(0), "ab") {
		t.Errorf("Row(0) = %q, expected prefix %q", s.Row(0), "ab")
	}
	if s.Width() != 6 || s.Height() != 3 {
		t.Errorf("Resize produced %dx%d, expected 6x3", s.Width(), s.Height())
	}
}

func TestDrawTextCentered(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextCentered(0, "ok")
	if got := s.Row(0); got != "    ok    " {
		t.Errorf("Row(0) = %q", got)
	}
}
