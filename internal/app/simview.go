package app

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/core"
	"firespread/internal/render"
)

// ErrUnknownSim reports a name with no registered factory.
var ErrUnknownSim = errors.New("unknown simulation")

// OpenSim builds the simulation registered under name from a flag-style
// configuration map.
func OpenSim(name string, cfg map[string]string) (core.Sim, error) {
	factory, ok := core.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (registered: %s)", ErrUnknownSim, name, strings.Join(core.SimNames(), ", "))
	}
	return factory(cfg)
}

// SimView steps a core.Sim live in a tcell screen. Nothing is precomputed;
// a sim that reports Done starts over from its first frame.
type SimView struct {
	sim     core.Sim
	screen  tcell.Screen
	painter *render.TerminalPainter
	timer   *core.FixedStep
	status  tcell.Style
	step    int
	paused  bool
}

// NewSimView binds sim to an initialised screen, stepping once per interval.
func NewSimView(sim core.Sim, screen tcell.Screen, palette []color.RGBA, interval time.Duration) *SimView {
	return &SimView{
		sim:     sim,
		screen:  screen,
		painter: render.NewTerminalPainter(palette),
		timer:   core.NewFixedStep(interval),
		status:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(26, 27, 38)),
	}
}

func (v *SimView) advance() {
	if d, ok := v.sim.(interface{ Done() bool }); ok && d.Done() {
		v.sim.Reset(0)
		v.step = 0
		return
	}
	v.sim.Step()
	v.step++
}

// HandleKey applies one key press and reports whether the view should keep
// running.
func (v *SimView) HandleKey(_ context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
		case 'n':
			v.advance()
		case 'r':
			v.sim.Reset(0)
			v.step = 0
		}
	}
	return true
}

// Tick steps the sim when the interval has elapsed.
func (v *SimView) Tick() bool {
	if v.paused || !v.timer.ShouldStep() {
		return false
	}
	v.advance()
	return true
}

// Draw renders the status bar and the live cells.
func (v *SimView) Draw() {
	v.screen.Clear()
	size := v.sim.Size()
	line := fmt.Sprintf(" %s  step %d  %dx%d ", v.sim.Name(), v.step, size.W, size.H)
	if v.paused {
		line += " [paused]"
	}
	render.DrawText(v.screen, 0, 0, v.status, line)
	v.painter.DrawCells(v.screen, v.sim.Cells(), size, 0, 1)
	v.screen.Show()
}

// Run polls input and steps the sim until ctx ends or the user quits.
func (v *SimView) Run(ctx context.Context) {
	runScreen(ctx, v.screen, v)
}
