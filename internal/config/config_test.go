package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/lifewheel/internal/geom"
	"github.com/elektrokombinacija/lifewheel/internal/vis/interact"
)

func validRaw() Raw {
	return Raw{
		RingCount:    10,
		Gap:          2,
		Size:         900,
		Gestures:     "all",
		Data:         "wheel.db",
		LongPress:    "600ms",
		PanThreshold: 2,
		FillBase:     0.35,
	}
}

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(New(""))
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.RingCount)
	assert.Equal(t, 2.0, cfg.Gap)
	assert.Equal(t, 900, cfg.Size)
	assert.Equal(t, interact.AllGestures, cfg.Gestures)
	assert.Equal(t, 600*time.Millisecond, cfg.LongPressDelay)
	assert.Equal(t, geom.Pt(450, 450), cfg.Center())
	assert.Equal(t, 450.0, cfg.Radius())
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wheel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ring-count: 5\ngestures: basic\nsize: 600\n"), 0o644))
	t.Setenv("LIFEWHEEL_GAP", "4")
	t.Setenv("LIFEWHEEL_LONG_PRESS", "1s")

	cfg, err := Load(New(path))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.RingCount)
	assert.Equal(t, interact.BasicGestures, cfg.Gestures)
	assert.Equal(t, 4.0, cfg.Gap)
	assert.Equal(t, time.Second, cfg.LongPressDelay)

	ic := cfg.Interaction()
	assert.Equal(t, geom.Pt(300, 300), ic.Center)
	assert.Equal(t, 300.0, ic.Radius)
	assert.Equal(t, 5, ic.RingCount)
	assert.Equal(t, interact.BasicGestures, ic.Gestures)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ring-count: [\n"), 0o644))
	_, err := Load(New(path))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Raw)
	}{
		{"zero rings", func(r *Raw) { r.RingCount = 0 }},
		{"negative gap", func(r *Raw) { r.Gap = -1 }},
		{"full gap", func(r *Raw) { r.Gap = 360 }},
		{"tiny canvas", func(r *Raw) { r.Size = 10 }},
		{"bad duration", func(r *Raw) { r.LongPress = "soon" }},
		{"zero duration", func(r *Raw) { r.LongPress = "0s" }},
		{"bad gesture", func(r *Raw) { r.Gestures = "hover,teleport" }},
		{"opacity", func(r *Raw) { r.FillBase = 1.5 }},
		{"negative threshold", func(r *Raw) { r.PanThreshold = -2 }},
	}

	_, err := Validate(validRaw())
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)
			_, err := Validate(raw)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseGestures(t *testing.T) {
	g, err := ParseGestures("hover, pan, pinch")
	require.NoError(t, err)
	assert.True(t, g.Has(interact.GestureHover|interact.GesturePan|interact.GesturePinch))
	assert.False(t, g.Has(interact.GestureWheelZoom))

	g, err = ParseGestures("BASIC")
	require.NoError(t, err)
	assert.Equal(t, interact.BasicGestures, g)
}
