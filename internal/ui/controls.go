package ui

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"unicode"

	"firespread/internal/core"
)

// controlState is one adjustable row of the parameter panel.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	return states
}

// refresh loads the displayed value from a snapshot entry.
func (s *controlState) refresh(p core.Parameter, ok bool) {
	s.hasValue = false
	s.value = "--"
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			return
		}
		s.set(float64(v))
	case core.ParamTypeFloat:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return
		}
		s.set(v)
	}
}

func (s *controlState) set(v float64) {
	s.hasValue = true
	s.floatValue = v
	if s.control.Type == core.ParamTypeInt {
		s.intValue = int(math.Round(v))
		s.value = strconv.Itoa(s.intValue)
		return
	}
	s.value = formatFloat(s.control, v)
}

// target returns the value one step in direction, clamped to the control's
// bounds, and whether it differs from the current value.
func (s *controlState) target(direction int) (float64, bool) {
	if !s.hasValue || direction == 0 {
		return 0, false
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		step := int(math.Round(s.control.Step))
		if step <= 0 {
			step = 1
		}
		t := int(math.Round(s.control.Clamp(float64(s.intValue + direction*step))))
		return float64(t), t != s.intValue
	case core.ParamTypeFloat:
		step := s.control.Step
		if step <= 0 {
			step = 0.05
		}
		t := s.control.Clamp(s.floatValue + float64(direction)*step)
		return t, math.Abs(t-s.floatValue) >= 1e-9
	}
	return 0, false
}

// layoutControls positions each row and its -/+ buttons inside a panel of the
// given width.
func layoutControls(states []controlState, width int) {
	for i := range states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = top
		states[i].minusRect = minus
		states[i].plusRect = plus
	}
}

// hit finds the control button under (x, y) in panel coordinates.
func hit(states []controlState, x, y int) (int, int, bool) {
	for i := range states {
		if !states[i].hasValue {
			continue
		}
		if pointInRect(x, y, states[i].minusRect) {
			return i, -1, true
		}
		if pointInRect(x, y, states[i].plusRect) {
			return i, 1, true
		}
	}
	return 0, 0, false
}

// statusLines renders the read-only part of a snapshot: every parameter that
// has no control, one "Label: value" line each.
func statusLines(snap core.ParameterSnapshot, states []controlState) []string {
	adjustable := make(map[string]bool, len(states))
	for _, s := range states {
		adjustable[s.control.Key] = true
	}
	var lines []string
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			if adjustable[p.Key] {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %s", p.Label, p.Value))
		}
	}
	return lines
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func panelTitle(name string) string {
	if name == "" {
		return "Controls"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r)) + " Controls"
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusSpacing  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
