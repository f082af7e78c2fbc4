// Package render turns frames and raster layers into pixels: images, video,
// charts and terminal cells.
package render

import (
	"image"
	"image/color"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillRampRGBA maps values in [0,1] onto a linear ramp between lo and hi.
// Values outside the range are clamped.
func fillRampRGBA(buf []byte, vals []float64, lo, hi color.RGBA) {
	lerp := func(a, b uint8, t float64) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	for i, v := range vals {
		t := min(1, max(0, v))
		base := i * 4
		buf[base+0] = lerp(lo.R, hi.R, t)
		buf[base+1] = lerp(lo.G, hi.G, t)
		buf[base+2] = lerp(lo.B, hi.B, t)
		buf[base+3] = 255
	}
}

// CellsImage renders a w*h state grid with one palette color per cell, each
// cell becoming a scale*scale block.
func CellsImage(cells []uint8, w, h int, palette []color.RGBA, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	fillPaletteRGBA(src.Pix, cells, palette)
	return upscale(src, scale)
}

// FieldImage renders a w*h field of values in [0,1] along the lo..hi ramp.
func FieldImage(vals []float64, w, h int, lo, hi color.RGBA, scale int) *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRampRGBA(src.Pix, vals, lo, hi)
	return upscale(src, scale)
}

// upscale enlarges src by an integer factor with nearest-neighbour sampling.
func upscale(src *image.RGBA, scale int) *image.RGBA {
	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			px := src.Pix[y*src.Stride+x*4 : y*src.Stride+x*4+4]
			for dy := 0; dy < scale; dy++ {
				row := (y*scale + dy) * dst.Stride
				for dx := 0; dx < scale; dx++ {
					copy(dst.Pix[row+(x*scale+dx)*4:], px)
				}
			}
		}
	}
	return dst
}
