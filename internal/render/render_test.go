package render

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"firespread/internal/raster"
	"firespread/internal/sims/wildfire"
)

func runSmall(t *testing.T) *wildfire.Sequence {
	t.Helper()
	l, err := raster.Uniform(8, 6, 0.5, 0.6, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	seq, err := wildfire.Run(l, wildfire.Params{Steps: 4, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{R: 1, A: 255}, {G: 2, A: 255}}
	buf := make([]byte, 3*4)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, pal)
	want := []byte{1, 0, 0, 255, 0, 2, 0, 255, 0, 2, 0, 255}
	if !bytes.Equal(buf, want) {
		t.Fatalf("pixels = %v, want %v", buf, want)
	}
	fillPaletteRGBA(buf, []uint8{0, 1, 0}, nil)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, empty palette should clear", i, b)
		}
	}
}

func TestCellsImageUpscales(t *testing.T) {
	img := CellsImage([]uint8{0, 1, 2, 0}, 2, 2, wildfire.Palette(), 3)
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("bounds = %v", b)
	}
	if got := img.RGBAAt(5, 0); got != wildfire.Palette()[wildfire.Burning] {
		t.Fatalf("pixel (5,0) = %v", got)
	}
	if got := img.RGBAAt(2, 4); got != wildfire.Palette()[wildfire.Burnt] {
		t.Fatalf("pixel (2,4) = %v", got)
	}
}

func TestFieldImageRamp(t *testing.T) {
	img := FieldImage([]float64{0, 1, -3, 0.5}, 4, 1, black, white, 1)
	if img.RGBAAt(0, 0) != black || img.RGBAAt(1, 0) != white || img.RGBAAt(2, 0) != black {
		t.Fatal("ramp endpoints wrong")
	}
	if g := img.RGBAAt(3, 0).G; g != 128 {
		t.Fatalf("midpoint = %d", g)
	}
}

func TestWriteFramePNGs(t *testing.T) {
	seq := runSmall(t)
	dir := t.TempDir()
	if err := WriteFramePNGs(dir, seq, 2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "frame_0004.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Fatalf("frame bounds = %v", b)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_0005.png")); !os.IsNotExist(err) {
		t.Fatal("unexpected extra frame")
	}
}

func TestWriteLayerPNGs(t *testing.T) {
	l, _ := raster.Uniform(5, 4, 0.2, 0.8, 0.4)
	dir := t.TempDir()
	if err := WriteLayerPNGs(dir, l, 1); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"elevation.png", "fuel.png", "probability.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
}

func TestWriteVideo(t *testing.T) {
	seq := runSmall(t)
	path := filepath.Join(t.TempDir(), "run.avi")
	if err := WriteVideo(path, seq, 4, 10); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) < 12 || string(data[:4]) != "RIFF" || string(data[8:12]) != "AVI " {
		t.Fatal("output is not an AVI file")
	}
}

func TestWriteBurnChart(t *testing.T) {
	seq := runSmall(t)
	stats := wildfire.MeasureSequence(seq, wildfire.Params{Steps: 4})
	var buf bytes.Buffer
	if err := WriteBurnChart(&buf, stats); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("chart is not a PNG: %v", err)
	}
	if err := WriteBurnChart(&buf, stats[:1]); err == nil {
		t.Fatal("expected error for a single frame")
	}
}

func TestTerminalPainterHalfBlocks(t *testing.T) {
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(20, 10)

	seq := runSmall(t)
	f0, _ := seq.At(0)
	tp := NewTerminalPainter(wildfire.Palette())
	tp.Draw(s, f0, 1, 1)

	// Centre cell (4,3) is the lower half of terminal row 1+3/2.
	r, _, st, _ := s.GetContent(1+4, 1+1)
	if r != upperHalf {
		t.Fatalf("rune = %q", r)
	}
	fg, bg, _ := st.Decompose()
	want := wildfire.Palette()
	if bg != tcell.NewRGBColor(int32(want[wildfire.Burning].R), int32(want[wildfire.Burning].G), int32(want[wildfire.Burning].B)) {
		t.Fatalf("background = %v, want burning color", bg)
	}
	if fg != tcell.NewRGBColor(int32(want[wildfire.Unburnt].R), int32(want[wildfire.Unburnt].G), int32(want[wildfire.Unburnt].B)) {
		t.Fatalf("foreground = %v, want unburnt color", fg)
	}

	// Raw cells paint the same way as the frame they came from.
	s.Clear()
	tp.DrawCells(s, f0.AppendBytes(nil), f0.Size(), 1, 1)
	_, _, st2, _ := s.GetContent(1+4, 1+1)
	if fg2, bg2, _ := st2.Decompose(); fg2 != fg || bg2 != bg {
		t.Fatalf("DrawCells colors = %v/%v, Draw colors = %v/%v", fg2, bg2, fg, bg)
	}

	DrawText(s, 0, 9, tcell.StyleDefault, "ok")
	if r, _, _, _ := s.GetContent(1, 9); r != 'k' {
		t.Fatalf("text rune = %q", r)
	}
}
