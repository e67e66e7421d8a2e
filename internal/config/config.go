// Package config resolves settings from defaults, a config file,
// LIFEWHEEL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/elektrokombinacija/lifewheel/internal/core"
	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/store"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
)

// Default values for configuration.
const (
	DefaultSize     = 900
	DefaultFillBase = 0.35
	EnvPrefix       = "LIFEWHEEL"
	FileName        = ".lifewheel"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Raw holds unvalidated values from all sources. Viper unmarshals into it.
type Raw struct {
	RingCount    int     `mapstructure:"ring-count"`
	Gap          float64 `mapstructure:"gap"`
	Size         int     `mapstructure:"size"`
	Gestures     string  `mapstructure:"gestures"`
	Data         string  `mapstructure:"data"`
	LongPress    string  `mapstructure:"long-press"`
	PanThreshold float64 `mapstructure:"pan-threshold"`
	FillBase     float64 `mapstructure:"fill-base"`
}

// Config is the validated configuration.
type Config struct {
	RingCount      int
	Gap            float64
	Size           int // Canvas edge in pixels; the wheel radius is Size/2
	Gestures       interact.Gestures
	DataPath       string
	LongPressDelay time.Duration
	PanThreshold   float64
	FillBase       float64
}

// Radius is the wheel radius for the canvas.
func (c Config) Radius() float64 { return float64(c.Size) / 2 }

// Center is the wheel center for the canvas.
func (c Config) Center() geom.Point { return geom.Pt(c.Radius(), c.Radius()) }

// Interaction returns the dispatcher configuration.
func (c Config) Interaction() interact.Config {
	cfg := interact.DefaultConfig()
	cfg.Center = c.Center()
	cfg.Radius = c.Radius()
	cfg.RingCount = c.RingCount
	cfg.Gap = c.Gap
	cfg.Gestures = c.Gestures
	cfg.LongPressDelay = c.LongPressDelay
	cfg.PanThreshold = c.PanThreshold
	return cfg
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ring-count", core.DefaultRingCount)
	v.SetDefault("gap", geom.DefaultGap)
	v.SetDefault("size", DefaultSize)
	v.SetDefault("gestures", "all")
	v.SetDefault("data", store.DefaultPath())
	v.SetDefault("long-press", interact.DefaultLongPressDelay.String())
	v.SetDefault("pan-threshold", interact.DefaultPanThreshold)
	v.SetDefault("fill-base", DefaultFillBase)
}

// New returns a viper instance with defaults, env binding and the config
// file search path set up. An explicit file overrides the search.
func New(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName) // Name of config file (without extension)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the config file if present and validates the merged values.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			// Config file was found but another error was produced
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}
	var raw Raw
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return Validate(raw)
}

// Validate checks raw values and converts them.
func Validate(raw Raw) (Config, error) {
	cfg := Config{
		RingCount:    raw.RingCount,
		Gap:          raw.Gap,
		Size:         raw.Size,
		DataPath:     raw.Data,
		PanThreshold: raw.PanThreshold,
		FillBase:     raw.FillBase,
	}

	if cfg.RingCount < 1 || cfg.RingCount > 100 {
		return Config{}, fmt.Errorf("%w: ring-count must be between 1 and 100, got %d", ErrInvalid, cfg.RingCount)
	}
	if cfg.Gap < 0 || cfg.Gap >= 360 {
		return Config{}, fmt.Errorf("%w: gap must be in [0, 360), got %g", ErrInvalid, cfg.Gap)
	}
	if cfg.Size < 50 {
		return Config{}, fmt.Errorf("%w: size must be at least 50, got %d", ErrInvalid, cfg.Size)
	}
	if cfg.PanThreshold < 0 {
		return Config{}, fmt.Errorf("%w: pan-threshold must not be negative", ErrInvalid)
	}
	if cfg.FillBase < 0 || cfg.FillBase > 1 {
		return Config{}, fmt.Errorf("%w: fill-base must be in [0, 1], got %g", ErrInvalid, cfg.FillBase)
	}

	g, err := ParseGestures(raw.Gestures)
	if err != nil {
		return Config{}, err
	}
	cfg.Gestures = g

	d, err := time.ParseDuration(raw.LongPress)
	if err != nil || d <= 0 {
		return Config{}, fmt.Errorf("%w: long-press must be a positive duration, got %q", ErrInvalid, raw.LongPress)
	}
	cfg.LongPressDelay = d
	return cfg, nil
}

// ParseGestures maps "all", "basic" or a comma list of gesture names to flags.
func ParseGestures(s string) (interact.Gestures, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return interact.AllGestures, nil
	case "basic":
		return interact.BasicGestures, nil
	}
	var g interact.Gestures
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "hover":
			g |= interact.GestureHover
		case "pan":
			g |= interact.GesturePan
		case "wheel-zoom", "zoom":
			g |= interact.GestureWheelZoom
		case "pinch":
			g |= interact.GesturePinch
		case "long-press":
			g |= interact.GestureLongPress
		case "context-menu", "menu":
			g |= interact.GestureContextMenu
		default:
			return 0, fmt.Errorf("%w: unknown gesture %q", ErrInvalid, name)
		}
	}
	return g, nil
}
