package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/render"
	"firespread/internal/sims/wildfire"
)

// TerminalView plays a Player in a tcell screen. The grid is drawn with
// half-block characters under a one-line status bar.
type TerminalView struct {
	player  *Player
	screen  tcell.Screen
	painter *render.TerminalPainter
	status  tcell.Style
	message string
}

// NewTerminalView binds player to an initialised screen.
func NewTerminalView(player *Player, screen tcell.Screen) *TerminalView {
	return &TerminalView{
		player:  player,
		screen:  screen,
		painter: render.NewTerminalPainter(wildfire.Palette()),
		status:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(26, 27, 38)),
	}
}

// HandleKey applies one key press and reports whether the viewer should
// keep running.
func (v *TerminalView) HandleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		v.player.Seek(1)
	case tcell.KeyLeft:
		v.player.Seek(-1)
	case tcell.KeyRune:
		v.message = ""
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.player.TogglePause()
		case 'n':
			v.player.Step()
		case 'r':
			v.player.Reset(0)
		case 's':
			if err := v.player.Reseed(ctx); err != nil {
				v.message = err.Error()
			}
		case '+', '=':
			v.nudge("wind_speed", 1)
		case '-':
			v.nudge("wind_speed", -1)
		case ']':
			v.nudge("wind_direction", 1)
		case '[':
			v.nudge("wind_direction", -1)
		case 'h':
			v.nudge("humidity", 1)
		case 'H':
			v.nudge("humidity", -1)
		}
	}
	return true
}

// nudge moves a float parameter by one control step and reruns.
func (v *TerminalView) nudge(key string, dir float64) {
	p, ok := v.player.Parameters().Lookup(key)
	if !ok {
		return
	}
	var cur float64
	if _, err := fmt.Sscan(p.Value, &cur); err != nil {
		return
	}
	for _, c := range v.player.ParameterControls() {
		if c.Key == key {
			v.player.SetFloatParameter(key, cur+dir*c.Step)
			v.player.Reset(0)
			return
		}
	}
}

// Draw renders the status bar and the current frame, then shows the screen.
func (v *TerminalView) Draw() {
	v.screen.Clear()
	i, n := v.player.Cursor()
	f := v.player.Frame()
	speed, dir := v.player.Wind()
	line := fmt.Sprintf(" frame %d/%d  burning %d  burnt %d  wind %.0f@%.0f  humidity %.0f ",
		i, n-1, f.Count(wildfire.Burning), f.Count(wildfire.Burnt), speed, dir, v.player.pending.Humidity)
	if v.player.Paused() {
		line += " [paused]"
	}
	if v.message != "" {
		line += "  " + v.message
	}
	render.DrawText(v.screen, 0, 0, v.status, line)
	v.painter.Draw(v.screen, f, 0, 1)
	v.screen.Show()
}

// Run polls input and advances playback until ctx ends or the user quits.
func (v *TerminalView) Run(ctx context.Context) {
	runScreen(ctx, v.screen, v)
}

// screenView is the part of a terminal view the event loop drives.
type screenView interface {
	HandleKey(ctx context.Context, ev *tcell.EventKey) bool
	Tick() bool
	Draw()
}

// Tick advances playback when the frame interval has elapsed.
func (v *TerminalView) Tick() bool { return v.player.Tick() }

func runScreen(ctx context.Context, screen tcell.Screen, view screenView) {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	view.Draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !view.HandleKey(ctx, ev) {
					return
				}
				view.Draw()
			case *tcell.EventResize:
				screen.Sync()
				view.Draw()
			}
		case <-ticker.C:
			if view.Tick() {
				view.Draw()
			}
		}
	}
}
