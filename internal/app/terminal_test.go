package app

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestView(t *testing.T) (*TerminalView, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 12)
	return NewTerminalView(newTestPlayer(t), screen), screen
}

func statusText(s tcell.SimulationScreen, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, 0)
		b.WriteRune(r)
	}
	return b.String()
}

func key(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestTerminalViewDrawsStatusAndGrid(t *testing.T) {
	v, screen := newTestView(t)
	v.Draw()
	status := statusText(screen, 80)
	if !strings.Contains(status, "frame 0/6") || !strings.Contains(status, "burning 1") {
		t.Fatalf("status = %q", status)
	}
	// The centre cell (10,7) lives in the bottom half of terminal row 1+3.
	r, _, style, _ := screen.GetContent(10, 4)
	if r != '▀' {
		t.Fatalf("grid rune = %q", r)
	}
	_, bg, _ := style.Decompose()
	if bg != tcell.NewRGBColor(255, 69, 0) {
		t.Fatalf("burning cell background = %v", bg)
	}
}

func TestTerminalViewKeys(t *testing.T) {
	v, screen := newTestView(t)
	ctx := context.Background()

	if !v.HandleKey(ctx, key(' ')) || !v.player.Paused() {
		t.Fatal("space should pause")
	}
	v.HandleKey(ctx, key('n'))
	v.HandleKey(ctx, tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	if i, _ := v.player.Cursor(); i != 2 {
		t.Fatalf("cursor = %d, want 2", i)
	}
	v.HandleKey(ctx, tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	if i, _ := v.player.Cursor(); i != 1 {
		t.Fatalf("cursor = %d, want 1", i)
	}

	before, _ := v.player.Wind()
	v.HandleKey(ctx, key('+'))
	if after, _ := v.player.Wind(); after != before+1 {
		t.Fatalf("wind = %v, want %v", after, before+1)
	}
	if i, _ := v.player.Cursor(); i != 0 {
		t.Fatal("changing a parameter should rerun from frame 0")
	}
	v.Draw()
	if !strings.Contains(statusText(screen, 80), "[paused]") {
		t.Fatal("status should show the paused flag")
	}

	if v.HandleKey(ctx, key('q')) {
		t.Fatal("q should quit")
	}
	if v.HandleKey(ctx, tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("escape should quit")
	}
}
