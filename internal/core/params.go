package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Parameter describes a single tunable value exposed by a simulation.
type Parameter struct {
	Key         string
	Label       string
	Type        ParamType
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of tunables exposed by a sim.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// IntParam builds an integer parameter entry.
func IntParam(key, label string, value int64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

// FloatParam builds a floating-point parameter entry.
func FloatParam(key, label string, value float64) Parameter {
	return Parameter{Key: key, Label: label, Type: ParamTypeFloat, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// ParameterControl describes an adjustable parameter. Bounds are optional and
// interpreted based on the parameter type.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType

	Step float64

	Min    float64
	Max    float64
	HasMin bool
	HasMax bool
}

// Clamp restricts v to the control's bounds.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// ParameterControlsProvider exposes the list of adjustable controls.
type ParameterControlsProvider interface {
	ParameterControls() []ParameterControl
}

// IntParameterSetter allows interactive updates of integer parameters.
type IntParameterSetter interface {
	SetIntParameter(key string, value int) bool
}

// FloatParameterSetter allows interactive updates of floating point
// parameters.
type FloatParameterSetter interface {
	SetFloatParameter(key string, value float64) bool
}

// ParameterSetter accepts both integer and float updates.
type ParameterSetter interface {
	IntParameterSetter
	FloatParameterSetter
}

// ApplyOverrides parses key=value pairs and routes them to the setter.
// Values containing a decimal point or exponent are treated as floats.
func ApplyOverrides(s ParameterSetter, kvs []string) error {
	for _, kv := range kvs {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: expected key=value", kv)
		}
		key = strings.TrimSpace(key)
		raw = strings.TrimSpace(raw)
		if iv, err := strconv.Atoi(raw); err == nil {
			if s.SetIntParameter(key, iv) || s.SetFloatParameter(key, float64(iv)) {
				continue
			}
			return fmt.Errorf("override %q: unknown parameter", key)
		}
		fv, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("override %q: %w", kv, err)
		}
		if !s.SetFloatParameter(key, fv) {
			return fmt.Errorf("override %q: unknown parameter", key)
		}
	}
	return nil
}
