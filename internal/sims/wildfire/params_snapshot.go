package wildfire

import "firespread/internal/core"

var parameterControls = []core.ParameterControl{
	{Key: "wind_speed", Label: "Wind speed (m/s)", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: 40, HasMin: true, HasMax: true},
	{Key: "wind_direction", Label: "Wind dir (deg to)", Type: core.ParamTypeFloat, Step: 15, Min: 0, Max: 360, HasMin: true, HasMax: true},
	{Key: "humidity", Label: "Humidity (%)", Type: core.ParamTypeFloat, Step: 5, Min: 0, Max: 100, HasMin: true, HasMax: true},
	{Key: "ignition_threshold", Label: "Ignition threshold", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	{Key: "steps", Label: "Steps", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 10000, HasMin: true, HasMax: true},
	{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Step: 1},
}

// Parameters snapshots the tunables for display.
func (p Params) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Environment",
			Params: []core.Parameter{
				core.FloatParam("wind_speed", "Wind speed", p.WindSpeed),
				core.FloatParam("wind_direction", "Wind direction", p.WindDirection),
				core.FloatParam("humidity", "Humidity", p.Humidity),
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.FloatParam("ignition_threshold", "Ignition threshold", p.IgnitionThreshold),
				core.IntParam("steps", "Steps", int64(p.Steps)),
				core.IntParam("seed", "Seed", p.Seed),
				core.IntParam("ignitions", "Ignition points", int64(len(p.Ignitions))),
			},
		},
	}}
}

// ParameterControls lists the adjustable parameters.
func (p *Params) ParameterControls() []core.ParameterControl {
	return append([]core.ParameterControl(nil), parameterControls...)
}

func controlFor(key string) (core.ParameterControl, bool) {
	for _, c := range parameterControls {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a float parameter, clamping to its bounds.
func (p *Params) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	value = ctrl.Clamp(value)
	switch key {
	case "wind_speed":
		p.WindSpeed = value
	case "wind_direction":
		p.WindDirection = value
	case "humidity":
		p.Humidity = value
	case "ignition_threshold":
		p.IgnitionThreshold = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer parameter, clamping to its bounds.
func (p *Params) SetIntParameter(key string, value int) bool {
	ctrl, ok := controlFor(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	switch key {
	case "steps":
		p.Steps = v
	case "seed":
		p.Seed = int64(v)
	default:
		return false
	}
	return true
}

// Parameters exposes the run parameters for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot { return e.params.Parameters() }
