//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"firespread/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelBG    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleFG    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelFG    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimFG      = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	buttonBG   = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff  = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonText = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonDim  = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

var keyHelp = []string{
	"space pause  n step",
	"<- -> seek  r rerun",
	"s reseed  1-4 layers",
}

// HUD renders the parameter panel to the right of the simulation view.
// Clicking -/+ stages an edit through the sim's setters; Changed reports
// whether any edit happened since the last call.
type HUD struct {
	sim      core.Sim
	width    int
	panel    *ebiten.Image
	pixel    *ebiten.Image
	snapshot core.ParameterSnapshot

	controls    []controlState
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
	title       string
	changed     bool
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: panelTitle(sim.Name())}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		h.controls = newControlStates(provider.ParameterControls())
		layoutControls(h.controls, h.width)
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes the snapshot and handles clicks on the panel.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	for i := range h.controls {
		p, ok := h.snapshot.Lookup(h.controls[i].control.Key)
		h.controls[i].refresh(p, ok)
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.offsetX {
		return
	}
	if i, dir, ok := hit(h.controls, mx-h.offsetX, my); ok {
		h.adjust(&h.controls[i], dir)
	}
}

// Changed reports and clears the pending-edit flag.
func (h *HUD) Changed() bool {
	if h == nil {
		return false
	}
	c := h.changed
	h.changed = false
	return c
}

func (h *HUD) adjust(s *controlState, dir int) {
	v, ok := s.target(dir)
	if !ok {
		return
	}
	applied := false
	switch s.control.Type {
	case core.ParamTypeInt:
		applied = h.intSetter != nil && h.intSetter.SetIntParameter(s.control.Key, int(v))
	case core.ParamTypeFloat:
		applied = h.floatSetter != nil && h.floatSetter.SetFloatParameter(s.control.Key, v)
	}
	if applied {
		s.set(v)
		h.changed = true
	}
}

// Draw paints the panel at offsetX, matching the scaled grid height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(panelBG)
	y := h.drawControls()
	h.drawStatus(y, height)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawControls() int {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleFG)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, controlsTop+labelBaseline, dimFG)
		return controlsTop + lineHeight
	}
	for i := range h.controls {
		s := &h.controls[i]
		baseline := s.top + labelBaseline
		text.Draw(h.panel, s.control.Label, face, panelPadding, baseline, labelFG)
		fg := labelFG
		if !s.hasValue {
			fg = dimFG
		}
		w := text.BoundString(face, s.value).Dx()
		text.Draw(h.panel, s.value, face, s.minusRect.Min.X-buttonGap-w, baseline, fg)

		_, canDown := s.target(-1)
		_, canUp := s.target(1)
		h.drawButton(s.minusRect, "-", canDown)
		h.drawButton(s.plusRect, "+", canUp)
	}
	return controlsTop + len(h.controls)*lineHeight
}

func (h *HUD) drawStatus(top, height int) {
	face := basicfont.Face7x13
	y := top + statusSpacing
	for _, line := range statusLines(h.snapshot, h.controls) {
		text.Draw(h.panel, line, face, panelPadding, y, labelFG)
		y += statusSpacing
	}
	y = height - panelPadding - (len(keyHelp)-1)*statusSpacing
	for _, line := range keyHelp {
		text.Draw(h.panel, line, face, panelPadding, y, dimFG)
		y += statusSpacing
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg, fg := buttonBG, buttonText
	if !enabled {
		bg, fg = buttonOff, buttonDim
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	b := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-b.Dx())/2
	y := rect.Min.Y + (rect.Dy()-b.Dy())/2 + b.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}
