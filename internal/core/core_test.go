package core

import (
	"errors"
	"testing"
	"time"
)

func TestGridWrap(t *testing.T) {
	g, err := NewGrid[int](4, 3)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct{ x, y, wx, wy int }{
		{0, 0, 0, 0},
		{-1, 0, 3, 0},
		{4, 0, 0, 0},
		{0, -1, 0, 2},
		{5, 7, 1, 1},
		{-5, -4, 3, 2},
	}
	for _, c := range cases {
		x, y := g.Wrap(c.x, c.y)
		if x != c.wx || y != c.wy {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), expected (%d,%d)", c.x, c.y, x, y, c.wx, c.wy)
		}
	}

	g.Set(-1, -1, 9)
	if got := g.Cells()[g.Index(3, 2)]; got != 9 {
		t.Fatalf("Set with negative coordinates wrote %d at (3,2), expected 9", got)
	}
	if got := g.At(7, 5); got != 9 {
		t.Fatalf("At(7,5) = %d, expected 9", got)
	}
}

func TestGridValidation(t *testing.T) {
	if _, err := NewGrid[float64](0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := FilledGrid(3, -1, 0.5); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	g, err := FilledGrid(2, 2, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	c := g.Clone()
	c.Cells()[0] = 1
	if g.Cells()[0] != 0.5 {
		t.Fatal("Clone must not share backing storage")
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(100 * time.Millisecond)
	fs.now = func() time.Time { return clock }

	if fs.ShouldStep() {
		t.Fatal("first poll should only start the clock")
	}
	clock = clock.Add(60 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatal("should not step before the interval elapses")
	}
	clock = clock.Add(60 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatal("expected a step after 120ms")
	}
	clock = clock.Add(250 * time.Millisecond)
	if !fs.ShouldStep() || !fs.ShouldStep() {
		t.Fatal("expected accumulated slack to yield two more steps")
	}
	if fs.ShouldStep() {
		t.Fatal("slack should be exhausted")
	}

	fs.SetInterval(0)
	if fs.Interval() != time.Second/60 {
		t.Fatalf("expected fallback interval, got %v", fs.Interval())
	}
}

type fakeSetter struct {
	ints   map[string]int
	floats map[string]float64
}

func (f *fakeSetter) SetIntParameter(key string, v int) bool {
	if key != "steps" {
		return false
	}
	f.ints[key] = v
	return true
}

func (f *fakeSetter) SetFloatParameter(key string, v float64) bool {
	if key != "humidity" {
		return false
	}
	f.floats[key] = v
	return true
}

func TestApplyOverrides(t *testing.T) {
	s := &fakeSetter{ints: map[string]int{}, floats: map[string]float64{}}
	if err := ApplyOverrides(s, []string{"steps=12", "humidity=100", "humidity = 2.5"}); err != nil {
		t.Fatal(err)
	}
	if s.ints["steps"] != 12 {
		t.Fatalf("steps = %d, expected 12", s.ints["steps"])
	}
	if s.floats["humidity"] != 2.5 {
		t.Fatalf("humidity = %v, expected 2.5", s.floats["humidity"])
	}
	if err := ApplyOverrides(s, []string{"bogus=1"}); err == nil {
		t.Fatal("expected unknown parameter error")
	}
	if err := ApplyOverrides(s, []string{"humidity"}); err == nil {
		t.Fatal("expected malformed override error")
	}
	if err := ApplyOverrides(s, []string{"humidity=wet"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := ParameterControl{Min: 0, Max: 100, HasMin: true, HasMax: true}
	if c.Clamp(-3) != 0 || c.Clamp(150) != 100 || c.Clamp(42) != 42 {
		t.Fatal("Clamp did not respect bounds")
	}
	snap := ParameterSnapshot{Groups: []ParameterGroup{{Name: "g", Params: []Parameter{FloatParam("a", "A", 1.5)}}}}
	p, ok := snap.Lookup("a")
	if !ok || p.Value != "1.5" {
		t.Fatalf("Lookup returned %+v, %v", p, ok)
	}
}
