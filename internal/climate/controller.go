// Package climate holds the thermostat state machine for a single
// REST-controlled air conditioner. It owns the desired state, remembers the
// last state handed to the device and decides when a new command is sent.
package climate

import (
	"context"
	"sync"
	"time"

	"ac_remote_control/internal/logger"
	"ac_remote_control/internal/models"
	"ac_remote_control/internal/remote"
)

var supportedModes = []string{
	string(models.HVACModeHeat),
	string(models.HVACModeCool),
	string(models.HVACModeOff),
}

// Controller is the thermostat entity. All setters and keep-alive ticks are
// serialised, so at most one command is in flight at a time.
type Controller struct {
	settings Settings
	presets  map[string]float64
	sender   remote.Sender
	store    StateStore
	notifier Notifier
	log      *logger.Logger
	now      func() time.Time

	// evalMu is held for the whole setter, including the outbound command.
	evalMu sync.Mutex

	// mu guards the fields below; readers never wait on a command.
	mu                sync.RWMutex
	started           bool
	active            bool
	hvacMode          models.HVACMode
	targetTemp        *float64
	savedTargetTemp   *float64
	presetMode        string
	lastState         models.ACState
	lastSendSucceeded bool
	lastActionTime    time.Time
}

// NewController builds a controller. store and notifier may be nil.
func NewController(s Settings, sender remote.Sender, store StateStore, notifier Notifier, log *logger.Logger) *Controller {
	if store == nil {
		store = nopStore{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}

	presets := make(map[string]float64, len(s.Presets))
	for _, p := range s.Presets {
		presets[p.Name] = p.Temperature
	}

	c := &Controller{
		settings:   s,
		presets:    presets,
		sender:     sender,
		store:      store,
		notifier:   notifier,
		log:        log,
		now:        time.Now,
		hvacMode:   s.InitialHVACMode,
		targetTemp: copyFloat(s.TargetTemp),
		presetMode: models.PresetNone,
	}
	c.savedTargetTemp = copyFloat(s.TargetTemp)
	if c.savedTargetTemp == nil && len(s.Presets) > 0 {
		c.savedTargetTemp = floatPtr(s.Presets[0].Temperature)
	}
	c.lastActionTime = c.now()
	return c
}

// Start restores the last known state and makes the controller ready for
// setters and ticks. Restore failures are logged and treated as "no state".
func (c *Controller) Start(ctx context.Context) {
	c.evalMu.Lock()
	defer c.evalMu.Unlock()

	old, err := c.store.LastState(ctx)
	if err != nil {
		c.log.Warnw("climate_restore_failed", "err", err)
		old = nil
	}

	c.mu.Lock()
	c.restore(old)
	c.lastState = c.currentState()
	c.started = true
	st := c.snapshotLocked()
	c.mu.Unlock()

	c.notifier.StateChanged(ctx, st, models.EventRestore)
}

// restore applies a persisted snapshot. Configured values win over restored ones.
func (c *Controller) restore(old *models.ClimateState) {
	if old != nil {
		if c.targetTemp == nil {
			if old.TargetTemperature == nil {
				c.targetTemp = floatPtr(DefaultTargetTemp)
				c.log.Warnw("climate_target_temperature_undefined", "fallback", DefaultTargetTemp)
			} else {
				c.targetTemp = floatPtr(*old.TargetTemperature)
			}
		}
		if old.PresetMode != "" && c.isPresetMode(old.PresetMode) {
			c.presetMode = old.PresetMode
		}
		if c.hvacMode == "" && isSupportedMode(old.HVACMode) {
			c.hvacMode = old.HVACMode
		}
	} else {
		if c.targetTemp == nil {
			c.targetTemp = floatPtr(DefaultTargetTemp)
		}
		c.log.Warnw("climate_no_saved_state", "target_temperature", *c.targetTemp)
	}
	if c.hvacMode == "" {
		c.hvacMode = models.HVACModeOff
	}
}

// SetHVACMode switches heat/cool/off. The state is published even when the
// command is suppressed or fails.
func (c *Controller) SetHVACMode(ctx context.Context, mode models.HVACMode) error {
	if !isSupportedMode(mode) {
		c.log.Errorw("climate_unrecognized_hvac_mode", "hvac_mode", mode)
		return &ValidationError{Field: "hvac_mode", Value: string(mode), Allowed: supportedModes, Err: ErrInvalidMode}
	}

	c.evalMu.Lock()
	defer c.evalMu.Unlock()

	c.mu.Lock()
	c.hvacMode = mode
	c.mu.Unlock()

	c.evaluate(ctx, true, nil)
	c.publish(ctx, models.EventModeChange)
	return nil
}

// SetTemperature sets the manual target. A nil value is ignored.
func (c *Controller) SetTemperature(ctx context.Context, temperature *float64) error {
	if temperature == nil {
		return nil
	}

	c.evalMu.Lock()
	defer c.evalMu.Unlock()

	c.mu.Lock()
	c.targetTemp = floatPtr(*temperature)
	c.mu.Unlock()

	c.evaluate(ctx, true, nil)
	c.publish(ctx, models.EventTemperatureChange)
	return nil
}

// SetPresetMode engages a configured preset or returns to the manual target
// with models.PresetNone.
func (c *Controller) SetPresetMode(ctx context.Context, name string) error {
	c.log.Infow("climate_set_preset_mode", "preset_mode", name)
	if !c.isPresetMode(name) {
		c.log.Warnw("climate_unsupported_preset_mode", "preset_mode", name)
		return &ValidationError{Field: "preset_mode", Value: name, Allowed: c.settings.presetModes(), Err: ErrInvalidPreset}
	}

	c.evalMu.Lock()
	defer c.evalMu.Unlock()

	c.mu.Lock()
	if name == c.presetMode {
		c.mu.Unlock()
		return nil
	}
	if name == models.PresetNone {
		c.presetMode = models.PresetNone
		c.targetTemp = copyFloat(c.savedTargetTemp)
	} else {
		if c.presetMode == models.PresetNone {
			c.savedTargetTemp = copyFloat(c.targetTemp)
		}
		c.presetMode = name
		c.targetTemp = floatPtr(c.presets[name])
	}
	c.mu.Unlock()

	c.evaluate(ctx, false, nil)
	c.publish(ctx, models.EventPresetChange)
	return nil
}

// Tick is the keep-alive entry point. It re-sends the desired state if it
// differs from what was last sent; min_cycle_duration does not apply.
func (c *Controller) Tick(ctx context.Context, now time.Time) {
	c.evalMu.Lock()
	defer c.evalMu.Unlock()

	if c.evaluate(ctx, false, &now) {
		c.publish(ctx, models.EventKeepAlive)
	}
}

// evaluate decides whether to send a command and sends it. The caller holds
// evalMu. It reports whether a command was dispatched.
func (c *Controller) evaluate(ctx context.Context, force bool, marker *time.Time) bool {
	c.mu.Lock()
	if !c.started {
		c.mu.Unlock()
		return false
	}
	if !c.active && c.targetTemp != nil {
		c.active = true
		c.log.Infow("climate_active", "target_temperature", *c.targetTemp)
	}
	if !c.active {
		c.mu.Unlock()
		return false
	}

	// Explicit user changes are throttled by min_cycle_duration; keep-alive
	// ticks carry a marker and are throttled by their own interval.
	if force && marker == nil && c.settings.MinCycleDuration > 0 && c.isDeviceActive() {
		since := c.now().Sub(c.lastActionTime)
		if since <= c.settings.MinCycleDuration {
			c.mu.Unlock()
			c.log.Debugw("climate_command_suppressed", "since_last", since, "min_cycle_duration", c.settings.MinCycleDuration)
			c.notifier.CommandSuppressed(ctx, since)
			return false
		}
	}
	if !c.isDeviceActive() {
		c.mu.Unlock()
		return false
	}

	cur := c.currentState()
	if cur.Equal(c.lastState) {
		c.mu.Unlock()
		return false
	}
	payload := buildPayload(c.lastState, cur)
	c.mu.Unlock()

	// A command outlives the request that caused it.
	ctx = context.WithoutCancel(ctx)
	c.log.Infow("climate_state_changed", "hvac_mode", cur.Mode, "target_temperature", cur.Temperature)
	ok, err := c.dispatch(ctx, payload)
	if err != nil {
		c.log.Warnw("climate_command_not_dispatched", "hvac_mode", cur.Mode, "err", err)
		return false
	}

	c.mu.Lock()
	c.lastSendSucceeded = ok
	c.lastState = cur
	c.lastActionTime = c.now()
	c.mu.Unlock()

	c.notifier.CommandDispatched(ctx, payload, ok)
	return true
}

// dispatch returns an error only when the command was never attempted, in
// which case the last sent state is kept so a later tick retries it.
func (c *Controller) dispatch(ctx context.Context, p remote.Payload) (bool, error) {
	if d, ok := c.sender.(remote.Dispatcher); ok {
		return d.Dispatch(ctx, p)
	}
	return c.sender.Send(ctx, p), nil
}

// isDeviceActive reports whether the unit is running. The device gives no
// feedback, so it is always considered active.
func (c *Controller) isDeviceActive() bool {
	return true
}

func (c *Controller) currentState() models.ACState {
	return models.ACState{Temperature: copyFloat(c.targetTemp), Mode: c.hvacMode}
}

func (c *Controller) isPresetMode(name string) bool {
	if name == models.PresetNone {
		return true
	}
	_, ok := c.presets[name]
	return ok
}

// hvacAction is a display value derived from the last send outcome.
func (c *Controller) hvacAction() models.HVACAction {
	if !c.lastSendSucceeded {
		return models.HVACActionIdle
	}
	switch c.hvacMode {
	case models.HVACModeHeat:
		return models.HVACActionHeating
	case models.HVACModeCool:
		return models.HVACActionCooling
	default:
		return models.HVACActionOff
	}
}

// Snapshot returns the displayed attributes of the entity.
func (c *Controller) Snapshot() models.ClimateState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// GetState returns Snapshot; it never fails.
func (c *Controller) GetState(ctx context.Context) (models.ClimateState, error) {
	return c.Snapshot(), nil
}

func (c *Controller) snapshotLocked() models.ClimateState {
	return models.ClimateState{
		Name:              c.settings.Name,
		UniqueID:          c.settings.UniqueID,
		HVACMode:          c.hvacMode,
		HVACModes:         c.settings.hvacModes(),
		HVACAction:        c.hvacAction(),
		TargetTemperature: copyFloat(c.targetTemp),
		MinTemp:           c.settings.minTemp(),
		MaxTemp:           c.settings.maxTemp(),
		Precision:         c.settings.precision(),
		TargetTempStep:    c.settings.targetTempStep(),
		TemperatureUnit:   TemperatureUnit,
		PresetMode:        c.presetMode,
		PresetModes:       c.settings.presetModes(),
		LastSendSucceeded: c.lastSendSucceeded,
		LastActionAt:      c.lastActionTime.UTC(),
		UpdatedAt:         c.now().UTC(),
	}
}

func (c *Controller) publish(ctx context.Context, reason string) {
	c.notifier.StateChanged(context.WithoutCancel(ctx), c.Snapshot(), reason)
}

func isSupportedMode(mode models.HVACMode) bool {
	switch mode {
	case models.HVACModeHeat, models.HVACModeCool, models.HVACModeOff:
		return true
	}
	return false
}

func floatPtr(f float64) *float64 { return &f }

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	return floatPtr(*f)
}
