package climate

import (
	"ac_remote_control/internal/models"
	"ac_remote_control/internal/remote"
)

// buildPayload derives the device command for moving from prev to cur.
// The device has no dedicated off mode code, so off still reports HEAT_MODE.
func buildPayload(prev, cur models.ACState) remote.Payload {
	wasOff := prev.Mode == models.HVACModeOff
	isOff := cur.Mode == models.HVACModeOff

	mode := remote.ModeHeat
	if cur.Mode == models.HVACModeCool {
		mode = remote.ModeCool
	}
	return remote.Payload{
		PowerToggle: wasOff != isOff,
		Power:       !isOff,
		Mode:        mode,
		Fan:         remote.FanAuto,
		Temperature: cur.Temperature,
	}
}
