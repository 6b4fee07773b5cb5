package control

import (
	"errors"
	"testing"

	"github.com/matzehuels/buttonhalo/pkg/geom"
)

func TestNewButton(t *testing.T) {
	b := NewButton("pencil", 24)

	if b.Label() != "pencil" {
		t.Errorf("Label() = %q, want %q", b.Label(), "pencil")
	}
	if b.Footprint() != 24 {
		t.Errorf("Footprint() = %d, want 24", b.Footprint())
	}
	if b.IsVisible() {
		t.Error("new button should be hidden")
	}
	if b.ID() == "" {
		t.Error("ID() should not be empty")
	}
	if other := NewButton("pencil", 24); other.ID() == b.ID() {
		t.Error("buttons should have distinct IDs")
	}
}

func TestNewSet(t *testing.T) {
	set := NewSet(3, 30, []string{"copy"})

	if len(set) != 3 {
		t.Fatalf("len(NewSet()) = %d, want 3", len(set))
	}

	want := []string{"copy", "button-1", "button-2"}
	for i, b := range set {
		if b.Label() != want[i] {
			t.Errorf("set[%d].Label() = %q, want %q", i, b.Label(), want[i])
		}
		if b.Footprint() != 30 {
			t.Errorf("set[%d].Footprint() = %d, want 30", i, b.Footprint())
		}
	}
}

func TestButtonMove(t *testing.T) {
	b := NewButton("arrow", 24)
	b.Move(geom.Pt(10, 20))

	if got, want := b.Position(), geom.Pt(10, 20); got != want {
		t.Errorf("Position() = %v, want %v", got, want)
	}
	if got, want := b.Bounds(), geom.R(10, 20, 24, 24); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestButtonVisibility(t *testing.T) {
	b := NewButton("arrow", 24)

	b.AnimatedShow()
	if !b.IsVisible() {
		t.Error("IsVisible() = false after AnimatedShow")
	}
	b.Hide()
	if b.IsVisible() {
		t.Error("IsVisible() = true after Hide")
	}
	b.AnimatedShow()
	if b.Shows() != 2 {
		t.Errorf("Shows() = %d, want 2", b.Shows())
	}
}

func TestButtonClose(t *testing.T) {
	b := NewButton("undo", 24)
	b.AnimatedShow()

	if err := b.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if !b.Closed() {
		t.Error("Closed() = false after Close")
	}
	if b.IsVisible() {
		t.Error("closed button should be hidden")
	}
	if err := b.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() = %v, want %v", err, ErrClosed)
	}
}
