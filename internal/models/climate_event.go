package models

import "time"

// Event types written to the climate event log.
const (
	EventModeChange        = "MODE_CHANGE"
	EventTemperatureChange = "TEMPERATURE_CHANGE"
	EventPresetChange      = "PRESET_CHANGE"
	EventCommandSent       = "COMMAND_SENT"
	EventCommandFailed     = "COMMAND_FAILED"
	EventRestore           = "RESTORE"
	EventKeepAlive         = "KEEP_ALIVE"
)

// ClimateEvent is a single log entry.
type ClimateEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // MODE_CHANGE | TEMPERATURE_CHANGE | PRESET_CHANGE | COMMAND_SENT | COMMAND_FAILED | RESTORE | KEEP_ALIVE
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
