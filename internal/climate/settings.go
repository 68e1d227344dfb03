package climate

import (
	"time"

	"ac_remote_control/internal/models"
)

// Fallbacks used when the corresponding option is not configured.
const (
	DefaultTargetTemp = 24.0
	DefaultMinTemp    = 7.0
	DefaultMaxTemp    = 35.0
	DefaultPrecision  = 0.1
	TemperatureUnit   = "°C"
)

// Preset is a named fixed target temperature.
type Preset struct {
	Name        string
	Temperature float64
}

// Settings is the immutable entity configuration.
type Settings struct {
	Name             string
	UniqueID         string
	MinTemp          *float64
	MaxTemp          *float64
	TargetTemp       *float64
	ACMode           bool
	MinCycleDuration time.Duration
	InitialHVACMode  models.HVACMode
	Presets          []Preset
	Precision        *float64
	TargetTempStep   *float64
}

func (s Settings) hvacModes() []models.HVACMode {
	if s.ACMode {
		return []models.HVACMode{models.HVACModeCool, models.HVACModeOff, models.HVACModeHeat}
	}
	return []models.HVACMode{models.HVACModeHeat, models.HVACModeOff}
}

func (s Settings) presetModes() []string {
	out := make([]string, 0, len(s.Presets)+1)
	out = append(out, models.PresetNone)
	for _, p := range s.Presets {
		out = append(out, p.Name)
	}
	return out
}

func (s Settings) precision() float64 {
	if s.Precision != nil {
		return *s.Precision
	}
	return DefaultPrecision
}

func (s Settings) targetTempStep() float64 {
	if s.TargetTempStep != nil {
		return *s.TargetTempStep
	}
	return s.precision()
}

func (s Settings) minTemp() float64 {
	if s.MinTemp != nil {
		return *s.MinTemp
	}
	return DefaultMinTemp
}

func (s Settings) maxTemp() float64 {
	if s.MaxTemp != nil {
		return *s.MaxTemp
	}
	return DefaultMaxTemp
}
