//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"firespread/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type layerProvider interface {
	Layer(name string) []float64
}

type windProvider interface {
	Wind() (speed, direction float64)
}

const maxWindSpeed = 40

// Overlay shades one raster layer over the grid and optionally draws the
// wind arrow. Keys 1-3 pick elevation, fuel or probability and 4 toggles wind.
type Overlay struct {
	sim      core.Sim
	scale    int
	view     LayerView
	showWind bool

	img   *ebiten.Image
	buf   []byte
	pixel *ebiten.Image
}

// NewOverlay constructs an overlay for sim drawn at scale.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles the layer toggles.
func (o *Overlay) Update() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		o.view = o.view.Toggle(ViewElevation)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		o.view = o.view.Toggle(ViewFuel)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		o.view = o.view.Toggle(ViewProbability)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit4):
		o.showWind = !o.showWind
	}
}

// Draw renders the active layer and wind arrow onto screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	if size.Area() == 0 {
		return
	}
	if o.view != ViewNone {
		if lp, ok := o.sim.(layerProvider); ok {
			o.drawLayer(screen, lp.Layer(o.view.Layer()), size)
		}
	}
	if o.showWind {
		if wp, ok := o.sim.(windProvider); ok {
			o.drawWind(screen, wp, size)
		}
	}
}

func (o *Overlay) drawLayer(screen *ebiten.Image, vals []float64, size core.Size) {
	if len(vals) != size.Area() {
		return
	}
	if o.img == nil || o.img.Bounds().Dx() != size.W || o.img.Bounds().Dy() != size.H {
		o.img = ebiten.NewImage(size.W, size.H)
		o.buf = make([]byte, 4*size.Area())
	}
	fillLayerRGBA(o.buf, vals, o.view)
	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.img, op)
}

func (o *Overlay) drawWind(screen *ebiten.Image, wp windProvider, size core.Size) {
	speed, dir := wp.Wind()
	span := float64(min(size.W, size.H)*o.scale) / 4
	cx := float64(size.W*o.scale) - span*0.75
	cy := span * 0.75
	col := arrowColor(speed, maxWindSpeed)
	if speed <= 0 {
		o.drawLine(screen, cx-2, cy, cx+2, cy, 4, col)
		return
	}
	length := span * (0.35 + 0.65*math.Sqrt(clamp01(speed/maxWindSpeed)))
	thickness := math.Max(1, float64(o.scale)*0.9)
	for _, s := range windArrow(cx, cy, length, dir) {
		o.drawLine(screen, s.x1, s.y1, s.x2, s.y2, thickness, col)
	}
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
