// Package config loads the device configuration from YAML.
//
// Files are parsed with yaml.v3 into a generic map and decoded over Default() with
// mapstructure, so a file only needs the keys it changes. Durations are written as Go duration
// strings ("5s", "200ms").
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config is the complete device configuration.
type Config struct {
	Device          Device          `mapstructure:"device" yaml:"device"`
	Timing          Timing          `mapstructure:"timing" yaml:"timing"`
	RetryCeiling    int             `mapstructure:"retry_ceiling" yaml:"retry_ceiling"`
	Characteristics Characteristics `mapstructure:"characteristics" yaml:"characteristics"`
	Redis           Redis           `mapstructure:"redis" yaml:"redis"`
	Metrics         Metrics         `mapstructure:"metrics" yaml:"metrics"`
	Log             Log             `mapstructure:"log" yaml:"log"`
}

type Device struct {
	ID string `mapstructure:"id" yaml:"id"`
}

// Timing holds the step timeouts plus the caller's pause between ticks.
type Timing struct {
	AckTimeout      time.Duration `mapstructure:"ack_timeout" yaml:"ack_timeout"`
	WakeTimeout     time.Duration `mapstructure:"wake_timeout" yaml:"wake_timeout"`
	BroadcastWindow time.Duration `mapstructure:"broadcast_window" yaml:"broadcast_window"`
	SettleDelay     time.Duration `mapstructure:"settle_delay" yaml:"settle_delay"`
	TickInterval    time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
}

// Characteristics are the values SetAllCharacteristics pushes. Each must fit in one byte.
type Characteristics struct {
	Alert   int `mapstructure:"alert" yaml:"alert"`
	Battery int `mapstructure:"battery" yaml:"battery"`
	Error   int `mapstructure:"error" yaml:"error"`
}

// Redis enables the redis report store and device lock when Addr is set.
type Redis struct {
	Addr   string        `mapstructure:"addr" yaml:"addr"`
	Prefix string        `mapstructure:"prefix" yaml:"prefix"`
	TTL    time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type Metrics struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Device: Device{ID: "pendant"},
		Timing: Timing{
			AckTimeout:      5 * time.Second,
			WakeTimeout:     5 * time.Second,
			BroadcastWindow: 45 * time.Second,
			SettleDelay:     200 * time.Millisecond,
			TickInterval:    10 * time.Millisecond,
		},
		RetryCeiling: 3,
		Characteristics: Characteristics{
			Battery: 100,
		},
		Redis: Redis{
			Prefix: "pendant:",
		},
		Metrics: Metrics{
			Addr: ":2112",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Merge(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Merge decodes a YAML document over c.
func (c *Config) Merge(data []byte) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid yaml: %w", err)
	}
	return c.decode(raw)
}

// Overrides applies dotted keys ("timing.ack_timeout") over c. Values may be strings; they are
// converted to the field type.
func (c *Config) Overrides(values map[string]any) error {
	nested := make(map[string]any)
	for key, value := range values {
		parts := strings.Split(key, ".")
		node := nested
		for _, p := range parts[:len(parts)-1] {
			child, ok := node[p].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[p] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return c.decode(nested)
}

func (c *Config) decode(raw map[string]any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Device.ID == "" {
		errs = append(errs, errors.New("device.id is required"))
	}
	if c.RetryCeiling < 1 {
		errs = append(errs, fmt.Errorf("retry_ceiling must be at least 1, got %d", c.RetryCeiling))
	}
	for name, d := range map[string]time.Duration{
		"timing.ack_timeout":      c.Timing.AckTimeout,
		"timing.wake_timeout":     c.Timing.WakeTimeout,
		"timing.broadcast_window": c.Timing.BroadcastWindow,
		"timing.tick_interval":    c.Timing.TickInterval,
	} {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %s", name, d))
		}
	}
	if c.Timing.SettleDelay < 0 {
		errs = append(errs, fmt.Errorf("timing.settle_delay must not be negative, got %s", c.Timing.SettleDelay))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"characteristics.alert", c.Characteristics.Alert},
		{"characteristics.battery", c.Characteristics.Battery},
		{"characteristics.error", c.Characteristics.Error},
	} {
		if f.value < 0 || f.value > 0xFF {
			errs = append(errs, fmt.Errorf("%s must be within 0..255, got %d", f.name, f.value))
		}
	}
	if c.Redis.TTL < 0 {
		errs = append(errs, fmt.Errorf("redis.ttl must not be negative, got %s", c.Redis.TTL))
	}
	return errors.Join(errs...)
}

// ParseSet turns "key=value" flag values into an Overrides map.
func ParseSet(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid override %q, want key=value", p)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return out, nil
}
