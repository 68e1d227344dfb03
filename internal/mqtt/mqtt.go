// Package mqtt publishes the climate entity state to a broker.
package mqtt

import (
	"encoding/json"
	"time"

	"ac_remote_control/internal/models"
)

// Publisher publishes state snapshots.
type Publisher interface {
	// PublishState sends the snapshot as a retained message.
	// Errors are reported but must not stop the caller.
	PublishState(st models.ClimateState, reason string) error

	// Close disconnects from the broker.
	Close() error
}

// StatePayload is the message body published for each state change.
type StatePayload struct {
	Timestamp         string   `json:"timestamp"`
	Reason            string   `json:"reason"`
	Name              string   `json:"name"`
	UniqueID          string   `json:"unique_id,omitempty"`
	HVACMode          string   `json:"hvac_mode"`
	HVACAction        string   `json:"hvac_action"`
	TargetTemperature *float64 `json:"target_temperature"`
	PresetMode        string   `json:"preset_mode"`
}

// FormatStatePayload creates the JSON payload for a state change.
func FormatStatePayload(st models.ClimateState, reason string) ([]byte, error) {
	ts := st.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return json.Marshal(StatePayload{
		Timestamp:         ts.UTC().Format(time.RFC3339),
		Reason:            reason,
		Name:              st.Name,
		UniqueID:          st.UniqueID,
		HVACMode:          string(st.HVACMode),
		HVACAction:        string(st.HVACAction),
		TargetTemperature: st.TargetTemperature,
		PresetMode:        st.PresetMode,
	})
}
