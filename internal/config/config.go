package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"ac_remote_control/internal/climate"
	"ac_remote_control/internal/models"

	"github.com/spf13/viper"
)

const (
	envPrefix = "ACRC"

	defaultPort        = "8080"
	defaultLogLevel    = "info"
	defaultDBPath      = "app.db"
	defaultName        = "AC Remote"
	defaultRESTTimeout = 3 * time.Second
	defaultTokenTTL    = time.Hour
	defaultMQTTTopic   = "ac_remote/state"
	defaultMQTTClient  = "ac-remote-control"
)

// KnownPresets lists the preset names accepted under climate.presets, in the
// order they are offered to clients.
var KnownPresets = []string{"away", "comfort", "eco", "home", "sleep", "activity"}

// allowedSteps are the values accepted for precision and target_temp_step.
var allowedSteps = []float64{0.1, 0.5, 1.0}

var (
	errMissingRESTURL      = errors.New("rest.url is required")
	errMissingRESTUser     = errors.New("rest.username is required")
	errMissingRESTPassword = errors.New("rest.password is required")
)

type Config struct {
	Port        string
	LogLevel    string
	CORSOrigins []string
	DB          DBConfig
	Auth        AuthConfig
	Climate     ClimateConfig
	REST        RESTConfig
	MQTT        MQTTConfig
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// ClimateConfig mirrors the entity options of the thermostat platform.
type ClimateConfig struct {
	Name             string
	UniqueID         string
	MinTemp          *float64
	MaxTemp          *float64
	TargetTemp       *float64
	ACMode           bool
	MinCycleDuration time.Duration
	KeepAlive        time.Duration
	InitialHVACMode  models.HVACMode
	Precision        *float64
	TargetTempStep   *float64
	Presets          []climate.Preset
}

type RESTConfig struct {
	URL      string
	Username string
	Password string
	Timeout  time.Duration
}

// MQTTConfig enables state publication when Broker is set.
type MQTTConfig struct {
	Broker   string
	Topic    string
	ClientID string
}

// Load reads config.yml from dir, applying ACRC_* environment overrides.
func Load(dir string) (Config, error) {
	v := newViper()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config from %q: %w", dir, err)
	}
	return decode(v)
}

// Read parses YAML config from r.
func Read(r io.Reader) (Config, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("climate.name", defaultName)
	v.SetDefault("rest.timeout", defaultRESTTimeout)
	v.SetDefault("mqtt.topic", defaultMQTTTopic)
	v.SetDefault("mqtt.client_id", defaultMQTTClient)
	return v
}

func decode(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:        v.GetString("port"),
		LogLevel:    v.GetString("log_level"),
		CORSOrigins: v.GetStringSlice("cors_origins"),
		DB:          DBConfig{Path: v.GetString("db.path")},
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Climate: ClimateConfig{
			Name:             v.GetString("climate.name"),
			UniqueID:         v.GetString("climate.unique_id"),
			MinTemp:          optionalFloat(v, "climate.min_temp"),
			MaxTemp:          optionalFloat(v, "climate.max_temp"),
			TargetTemp:       optionalFloat(v, "climate.target_temp"),
			ACMode:           v.GetBool("climate.ac_mode"),
			MinCycleDuration: v.GetDuration("climate.min_cycle_duration"),
			KeepAlive:        v.GetDuration("climate.keep_alive"),
			InitialHVACMode:  models.HVACMode(strings.ToLower(strings.TrimSpace(v.GetString("climate.initial_hvac_mode")))),
			Precision:        optionalFloat(v, "climate.precision"),
			TargetTempStep:   optionalFloat(v, "climate.target_temp_step"),
		},
		REST: RESTConfig{
			URL:      v.GetString("rest.url"),
			Username: v.GetString("rest.username"),
			Password: v.GetString("rest.password"),
			Timeout:  v.GetDuration("rest.timeout"),
		},
		MQTT: MQTTConfig{
			Broker:   v.GetString("mqtt.broker"),
			Topic:    v.GetString("mqtt.topic"),
			ClientID: v.GetString("mqtt.client_id"),
		},
	}

	presets, err := decodePresets(v)
	if err != nil {
		return Config{}, err
	}
	cfg.Climate.Presets = presets

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func optionalFloat(v *viper.Viper, key string) *float64 {
	if !v.IsSet(key) {
		return nil
	}
	f := v.GetFloat64(key)
	return &f
}

// decodePresets reads climate.presets.<name> entries in KnownPresets order.
func decodePresets(v *viper.Viper) ([]climate.Preset, error) {
	raw := v.GetStringMap("climate.presets")
	for name := range raw {
		if !isKnownPreset(name) {
			return nil, fmt.Errorf("climate.presets: unknown preset %q, must be one of %v", name, KnownPresets)
		}
	}
	var out []climate.Preset
	for _, name := range KnownPresets {
		key := "climate.presets." + name
		if !v.IsSet(key) {
			continue
		}
		out = append(out, climate.Preset{Name: name, Temperature: v.GetFloat64(key)})
	}
	return out, nil
}

func isKnownPreset(name string) bool {
	for _, p := range KnownPresets {
		if p == name {
			return true
		}
	}
	return false
}

// Validate checks required fields and enumerated values.
func (c Config) Validate() error {
	if strings.TrimSpace(c.REST.URL) == "" {
		return errMissingRESTURL
	}
	if c.REST.Username == "" {
		return errMissingRESTUser
	}
	if c.REST.Password == "" {
		return errMissingRESTPassword
	}
	if c.REST.Timeout <= 0 {
		return fmt.Errorf("rest.timeout must be positive, got %s", c.REST.Timeout)
	}

	cc := c.Climate
	switch cc.InitialHVACMode {
	case "", models.HVACModeHeat, models.HVACModeCool, models.HVACModeOff:
	default:
		return fmt.Errorf("climate.initial_hvac_mode: unsupported value %q", cc.InitialHVACMode)
	}
	if cc.MinCycleDuration < 0 {
		return fmt.Errorf("climate.min_cycle_duration must be positive, got %s", cc.MinCycleDuration)
	}
	if cc.KeepAlive < 0 || (cc.KeepAlive > 0 && cc.KeepAlive < time.Second) {
		return fmt.Errorf("climate.keep_alive must be at least 1s, got %s", cc.KeepAlive)
	}
	if cc.Precision != nil && !isAllowedStep(*cc.Precision) {
		return fmt.Errorf("climate.precision must be one of %v, got %v", allowedSteps, *cc.Precision)
	}
	if cc.TargetTempStep != nil && !isAllowedStep(*cc.TargetTempStep) {
		return fmt.Errorf("climate.target_temp_step must be one of %v, got %v", allowedSteps, *cc.TargetTempStep)
	}
	if cc.MinTemp != nil && cc.MaxTemp != nil && *cc.MinTemp > *cc.MaxTemp {
		return fmt.Errorf("climate.min_temp %.1f exceeds climate.max_temp %.1f", *cc.MinTemp, *cc.MaxTemp)
	}
	return nil
}

func isAllowedStep(f float64) bool {
	for _, s := range allowedSteps {
		if f == s {
			return true
		}
	}
	return false
}

// Settings converts the climate section into controller settings.
func (c ClimateConfig) Settings() climate.Settings {
	return climate.Settings{
		Name:             c.Name,
		UniqueID:         c.UniqueID,
		MinTemp:          c.MinTemp,
		MaxTemp:          c.MaxTemp,
		TargetTemp:       c.TargetTemp,
		ACMode:           c.ACMode,
		MinCycleDuration: c.MinCycleDuration,
		InitialHVACMode:  c.InitialHVACMode,
		Presets:          c.Presets,
		Precision:        c.Precision,
		TargetTempStep:   c.TargetTempStep,
	}
}
