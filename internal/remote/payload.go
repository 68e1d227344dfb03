// Package remote sends control commands to the REST-driven AC controller.
package remote

import (
	"context"
	"errors"
)

// Mode and fan codes understood by the controller device.
const (
	ModeCool = "COOL_MODE"
	ModeHeat = "HEAT_MODE"
	FanAuto  = "FAN_AUTO"
)

// Payload is the JSON command body posted to the device.
type Payload struct {
	PowerToggle bool     `json:"power_toggle"`
	Power       bool     `json:"power"`
	Mode        string   `json:"mode"`
	Fan         string   `json:"fan"`
	Temperature *float64 `json:"temperature"`
}

// Sender delivers a payload and reports whether the device accepted it.
// Implementations never return errors; failures are logged and reported as false.
type Sender interface {
	Send(ctx context.Context, p Payload) bool
}

// ErrNotDispatched reports that a command was never handed to the device.
var ErrNotDispatched = errors.New("command not dispatched")

// Dispatcher is a Sender that can refuse a command before attempting it.
// A refused command returns ErrNotDispatched; any other outcome was attempted.
type Dispatcher interface {
	Sender
	Dispatch(ctx context.Context, p Payload) (bool, error)
}

// Credentials for HTTP basic authentication.
type Credentials struct {
	Username string
	Password string
}
