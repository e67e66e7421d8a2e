package core

import (
	"errors"
	"image/color"
	"testing"
	"time"
)

func TestClampScore(t *testing.T) {
	tests := []struct {
		level, rings, want int
	}{
		{-3, 10, 0},
		{0, 10, 0},
		{7, 10, 7},
		{10, 10, 10},
		{11, 10, 10},
	}

	for _, tt := range tests {
		got := ClampScore(tt.level, tt.rings)
		if got != tt.want {
			t.Errorf("ClampScore(%d, %d) = %d, want %d", tt.level, tt.rings, got, tt.want)
		}
	}
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{"7", 7, false},
		{" 3 ", 3, false},
		{"0", 0, false},
		{"42", 10, false},
		{"-1", 0, false},
		{"seven", 0, true},
		{"", 0, true},
		{"4.5", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseScore(tt.text, DefaultRingCount)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScore) {
				t.Errorf("ParseScore(%q) err = %v, want ErrInvalidScore", tt.text, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseScore(%q) = %d, %v, want %d", tt.text, got, err, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2026-10-18"); err != nil {
		t.Errorf("valid date rejected: %v", err)
	}
	if _, err := ParseDate("18/10/2026"); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
	d := time.Date(2026, 1, 2, 23, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2026-01-02" {
		t.Errorf("FormatDate = %s", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		css  string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"#0f0", color.NRGBA{G: 255, A: 255}},
		{"hsl(240, 100%, 50%)", color.NRGBA{B: 255, A: 255}},
		{"HSL(0 100% 50%)", color.NRGBA{R: 255, A: 255}},
		{"hsla(120, 100%, 50%, 0.5)", color.NRGBA{G: 255, A: 255}},
		{"hsl(480, 100%, 50%)", color.NRGBA{G: 255, A: 255}},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.css)
		if err != nil {
			t.Errorf("ParseColor(%q) error: %v", tt.css, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.css, got, tt.want)
		}
	}

	for _, bad := range []string{"red", "#xyz", "hsl(1,2)", "rgb(1,2,3)"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) err = %v, want ErrInvalidColor", bad, err)
		}
	}
}

func TestPaletteColorParses(t *testing.T) {
	for i := 0; i < 20; i++ {
		if _, err := ParseColor(PaletteColor(i)); err != nil {
			t.Errorf("PaletteColor(%d) = %q does not parse: %v", i, PaletteColor(i), err)
		}
	}
}
