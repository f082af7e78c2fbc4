package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/core"
	"firespread/internal/sims/wildfire"
)

func TestOpenSimFromOverrides(t *testing.T) {
	o := parseOptions(t,
		"-set", "w=24",
		"-set", "h=18",
		"-set", "steps=3",
		"-seed", "5",
		"-probability", "random",
	)
	cfg, err := o.SimConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg["seed"] != "5" || cfg["probability"] != "random" {
		t.Fatalf("config = %v", cfg)
	}
	sim, err := OpenSim("wildfire", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size() != (core.Size{W: 24, H: 18}) {
		t.Fatalf("size = %+v", sim.Size())
	}

	if _, err := OpenSim("lava", cfg); !errors.Is(err, ErrUnknownSim) || !strings.Contains(err.Error(), "wildfire") {
		t.Fatalf("expected ErrUnknownSim listing wildfire, got %v", err)
	}
	if _, err := parseOptions(t, "-set", "w").SimConfig(); err == nil {
		t.Fatal("missing '=' should be rejected")
	}
}

func TestSimViewStepsAndLoops(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 12)

	sim, err := OpenSim("wildfire", map[string]string{"w": "20", "h": "14", "steps": "2"})
	if err != nil {
		t.Fatal(err)
	}
	v := NewSimView(sim, screen, wildfire.Palette(), time.Hour)
	ctx := context.Background()
	first := append([]uint8(nil), sim.Cells()...)

	v.HandleKey(ctx, key('n'))
	v.HandleKey(ctx, key('n'))
	v.Draw()
	if s := statusText(screen, 80); !strings.Contains(s, "wildfire  step 2  20x14") {
		t.Fatalf("status = %q", s)
	}
	// The centre cell (10,7) is the bottom half of terminal row 1+3.
	r, _, style, _ := screen.GetContent(10, 4)
	if _, bg, _ := style.Decompose(); r != '▀' || bg == tcell.ColorDefault {
		t.Fatalf("grid cell = %q %v", r, bg)
	}

	// Stepping a finished run starts it over.
	v.HandleKey(ctx, key('n'))
	if v.step != 0 || string(sim.Cells()) != string(first) {
		t.Fatal("a finished sim should restart from its first frame")
	}

	if !v.HandleKey(ctx, key(' ')) || !v.paused || v.Tick() {
		t.Fatal("a paused view should not tick")
	}
	v.Draw()
	if !strings.Contains(statusText(screen, 80), "[paused]") {
		t.Fatal("status should show the paused flag")
	}
	if v.HandleKey(ctx, key('q')) {
		t.Fatal("q should quit")
	}
}
