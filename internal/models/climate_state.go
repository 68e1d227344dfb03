package models

import "time"

// HVACMode is the operating mode requested for the air conditioner.
type HVACMode string

const (
	HVACModeHeat HVACMode = "heat"
	HVACModeCool HVACMode = "cool"
	HVACModeOff  HVACMode = "off"
)

// HVACAction is the derived, display-only activity of the unit.
type HVACAction string

const (
	HVACActionIdle    HVACAction = "idle"
	HVACActionHeating HVACAction = "heating"
	HVACActionCooling HVACAction = "cooling"
	HVACActionOff     HVACAction = "off"
)

// PresetNone is the sentinel preset meaning "use the manual target temperature".
const PresetNone = "none"

// ACState is the logical state last handed to the remote controller.
type ACState struct {
	Temperature *float64 `json:"temperature"`
	Mode        HVACMode `json:"mode"`
}

// Equal compares two states as whole records.
func (s ACState) Equal(o ACState) bool {
	if s.Mode != o.Mode {
		return false
	}
	if s.Temperature == nil || o.Temperature == nil {
		return s.Temperature == nil && o.Temperature == nil
	}
	return *s.Temperature == *o.Temperature
}

// ClimateState is the snapshot of the entity exposed to API clients and persisted
// as the last known state.
type ClimateState struct {
	Name              string     `json:"name"`
	UniqueID          string     `json:"unique_id,omitempty"`
	HVACMode          HVACMode   `json:"hvac_mode"`
	HVACModes         []HVACMode `json:"hvac_modes"`
	HVACAction        HVACAction `json:"hvac_action"`
	TargetTemperature *float64   `json:"target_temperature,omitempty"` // °C
	MinTemp           float64    `json:"min_temp"`
	MaxTemp           float64    `json:"max_temp"`
	Precision         float64    `json:"precision"`
	TargetTempStep    float64    `json:"target_temp_step"`
	TemperatureUnit   string     `json:"temperature_unit"`
	PresetMode        string     `json:"preset_mode"`
	PresetModes       []string   `json:"preset_modes"`
	LastSendSucceeded bool       `json:"last_send_succeeded"`
	LastActionAt      time.Time  `json:"last_action_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}
