package wildfire

import "image/color"

var firePalette = []color.RGBA{
	Unburnt: {R: 34, G: 139, B: 34, A: 255},
	Burning: {R: 255, G: 69, B: 0, A: 255},
	Burnt:   {R: 80, G: 80, B: 80, A: 255},
}

// Palette returns the colors used to render each CellState, indexed by state.
func Palette() []color.RGBA {
	return append([]color.RGBA(nil), firePalette...)
}

// Palette exposes the render palette on the engine for players.
func (e *Engine) Palette() []color.RGBA { return Palette() }
