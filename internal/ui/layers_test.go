package ui

import (
	"math"
	"testing"
)

func TestLayerViewToggle(t *testing.T) {
	v := ViewNone.Toggle(ViewFuel)
	if v != ViewFuel || v.Layer() != "fuel" {
		t.Fatalf("view = %v %q", v, v.Layer())
	}
	if v.Toggle(ViewFuel) != ViewNone {
		t.Fatal("toggling the shown layer should hide it")
	}
	if v.Toggle(ViewProbability).Layer() != "probability" {
		t.Fatal("toggling another layer should switch to it")
	}
	if ViewNone.Layer() != "" || LayerView(9).Layer() != "" {
		t.Fatal("unknown views have no layer")
	}
}

func TestFillLayerStretchesElevation(t *testing.T) {
	vals := []float64{0.2, 0.4, 0.6}
	buf := make([]byte, len(vals)*4)
	fillLayerRGBA(buf, vals, ViewElevation)
	first, last := elevationStops[0].col, elevationStops[len(elevationStops)-1].col
	if buf[0] != first.R || buf[3] != first.A {
		t.Fatalf("lowest cell = %v, want %v", buf[:4], first)
	}
	if buf[8] != last.R || buf[11] != last.A {
		t.Fatalf("highest cell = %v, want %v", buf[8:], last)
	}
	mid := elevationStops[2].col
	if buf[4] != mid.R || buf[5] != mid.G {
		t.Fatalf("middle cell = %v, want %v", buf[4:8], mid)
	}
}

func TestFillLayerNoneClears(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	fillLayerRGBA(buf, []float64{0.5}, ViewNone)
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("buf = %v", buf)
		}
	}
}

func TestWindArrowPointsDownwind(t *testing.T) {
	cases := []struct {
		dir    float64
		dx, dy float64
	}{
		{0, 1, 0},
		{90, 0, -1},
		{180, -1, 0},
		{270, 0, 1},
	}
	for _, c := range cases {
		segs := windArrow(50, 50, 20, c.dir)
		shaft := segs[0]
		gx, gy := shaft.x2-shaft.x1, shaft.y2-shaft.y1
		if math.Abs(gx-20*c.dx) > 1e-9 || math.Abs(gy-20*c.dy) > 1e-9 {
			t.Fatalf("dir %v: shaft delta = (%v,%v)", c.dir, gx, gy)
		}
		for _, head := range segs[1:] {
			if head.x1 != shaft.x2 || head.y1 != shaft.y2 {
				t.Fatalf("dir %v: head does not start at the tip", c.dir)
			}
		}
	}
	if arrowColor(50, 40) != arrowColor(40, 40) {
		t.Fatal("color should saturate at max speed")
	}
}
