//go:build ebiten

package app

import (
	"context"

	"firespread/internal/render"
	"firespread/internal/sims/wildfire"
	"firespread/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width in pixels of the parameter panel.
const HUDWidth = 260

// Game adapts a Player to the ebiten.Game interface.
type Game struct {
	player  *Player
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	scale   int
}

// New constructs a Game drawing player at scale.
func New(player *Player, scale int) *Game {
	size := player.Size()
	return &Game{
		player:  player,
		painter: render.NewGridPainter(size.W, size.H, wildfire.Palette()),
		overlay: ui.NewOverlay(player, scale),
		hud:     ui.NewHUD(player, HUDWidth),
		scale:   scale,
	}
}

// Update handles input and advances playback.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.player.TogglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.player.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		g.player.Seek(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		g.player.Seek(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.player.Reset(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.player.Reseed(context.Background()); err != nil {
			return err
		}
	}

	g.overlay.Update()
	g.hud.Update(g.player.Size().W * g.scale)
	if g.hud.Changed() {
		g.player.Reset(0)
	}
	g.player.Tick()
	return nil
}

// Draw renders the current frame, overlays and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.player.Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.player.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.player.Size()
	return s.W*g.scale + HUDWidth, s.H * g.scale
}
