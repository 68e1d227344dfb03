package service

import (
	"context"
	"fmt"
	"time"

	"ac_remote_control/internal/logger"
	"ac_remote_control/internal/metrics"
	"ac_remote_control/internal/models"
	"ac_remote_control/internal/mqtt"
	"ac_remote_control/internal/remote"
	"ac_remote_control/internal/repository"
)

// Recorder receives controller notifications. Every published state is
// saved as the last known state, appended to the event log, exported as
// metrics and, when a publisher is set, sent to the MQTT broker. Failures
// are logged and never reach the controller.
type Recorder struct {
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	publisher mqtt.Publisher
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// NewRecorder builds a recorder. publisher and m may be nil.
func NewRecorder(stateRepo repository.StateRepo, eventRepo repository.EventRepo, publisher mqtt.Publisher, m *metrics.Metrics, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{
		stateRepo: stateRepo,
		eventRepo: eventRepo,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

func (r *Recorder) StateChanged(ctx context.Context, st models.ClimateState, reason string) {
	if err := r.stateRepo.Save(ctx, st); err != nil {
		r.log.Errorw("climate_state_save_failed", "reason", reason, "err", err)
	}

	r.appendEvent(ctx, models.ClimateEvent{
		OccurredAt:  st.UpdatedAt,
		Type:        reason,
		Description: describeState(st, reason),
		Metadata: map[string]any{
			"hvac_mode":          st.HVACMode,
			"hvac_action":        st.HVACAction,
			"target_temperature": st.TargetTemperature,
			"preset_mode":        st.PresetMode,
		},
	})

	if r.publisher != nil {
		if err := r.publisher.PublishState(st, reason); err != nil {
			r.log.Warnw("climate_state_publish_failed", "reason", reason, "err", err)
		}
	}

	if r.metrics != nil {
		r.metrics.StateChangesTotal.WithLabelValues(reason).Inc()
		if st.TargetTemperature != nil {
			r.metrics.TargetTemperature.Set(*st.TargetTemperature)
		}
	}
}

func (r *Recorder) CommandDispatched(ctx context.Context, p remote.Payload, ok bool) {
	typ, desc := models.EventCommandSent, "Command accepted by AC controller"
	if !ok {
		typ, desc = models.EventCommandFailed, "Command rejected or unreachable AC controller"
	}
	r.appendEvent(ctx, models.ClimateEvent{
		Type:        typ,
		Description: desc,
		Metadata: map[string]any{
			"power_toggle": p.PowerToggle,
			"power":        p.Power,
			"mode":         p.Mode,
			"fan":          p.Fan,
			"temperature":  p.Temperature,
		},
	})

	if r.metrics != nil {
		r.metrics.ObserveCommand(ok)
	}
}

func (r *Recorder) CommandSuppressed(ctx context.Context, sinceLast time.Duration) {
	r.log.Debugw("climate_command_held_back", "since_last", sinceLast)
	if r.metrics != nil {
		r.metrics.SuppressedTotal.Inc()
	}
}

func (r *Recorder) appendEvent(ctx context.Context, e models.ClimateEvent) {
	if err := r.eventRepo.Append(ctx, e); err != nil {
		r.log.Errorw("climate_event_append_failed", "type", e.Type, "err", err)
	}
}

func describeState(st models.ClimateState, reason string) string {
	target := "unset"
	if st.TargetTemperature != nil {
		target = fmt.Sprintf("%.1f%s", *st.TargetTemperature, st.TemperatureUnit)
	}
	switch reason {
	case models.EventModeChange:
		return "HVAC mode changed to " + string(st.HVACMode)
	case models.EventTemperatureChange:
		return "Target temperature set to " + target
	case models.EventPresetChange:
		return fmt.Sprintf("Preset changed to %s (target %s)", st.PresetMode, target)
	case models.EventRestore:
		return fmt.Sprintf("State restored: mode %s, target %s, preset %s", st.HVACMode, target, st.PresetMode)
	case models.EventKeepAlive:
		return "Keep-alive resent state: mode " + string(st.HVACMode) + ", target " + target
	default:
		return "State changed"
	}
}
