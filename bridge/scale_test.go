package bridge

import (
	"math"
	"testing"
)

func TestScaleRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		v        float64
		want     float64
	}{
		{"normal low", 0, 10, 0, 0},
		{"normal mid", 0, 10, 5, 0.5},
		{"normal high", 0, 10, 10, 1},
		{"inverted min", 10, 0, 10, 0},
		{"inverted mid", 10, 0, 2.5, 0.75},
		{"inverted max", 10, 0, 0, 1},
		{"negative", -1, 1, 0, 0.5},
	}

	for _, tt := range tests {
		got := Scale(tt.v, tt.min, tt.max)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("%s: expected scale %v, got %v", tt.name, tt.want, got)
		}
		back := Unscale(got, tt.min, tt.max)
		if math.Abs(back-tt.v) > 1e-12 {
			t.Errorf("%s: expected round trip to %v, got %v", tt.name, tt.v, back)
		}
	}
}

func TestScaleDegenerate(t *testing.T) {
	if got := Scale(3, 3, 3); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Unscale(0.7, 3, 3); got != 3 {
		t.Errorf("expected min, got %v", got)
	}
}

func TestUnscaleClamps(t *testing.T) {
	if got := Unscale(2, 0, 10); got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if got := Unscale(-1, 0, 10); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestLogScale(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{0, 1},
		{0.5, 10},
		{1, 100},
	}
	for _, tt := range tests {
		got := LogUnscale(tt.x, 1, 100)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("unscale %v: expected %v, got %v", tt.x, tt.want, got)
		}
		if back := LogScale(got, 1, 100); math.Abs(back-tt.x) > 1e-9 {
			t.Errorf("scale %v: expected %v, got %v", got, tt.x, back)
		}
	}
}

func TestLogScaleZeroBound(t *testing.T) {
	got := LogUnscale(0, 0, 1)
	if math.IsInf(got, 0) || math.IsNaN(got) || got <= 0 {
		t.Errorf("expected a small positive value, got %v", got)
	}
	if got := LogScale(-1, 1, 100); got != 0 {
		t.Errorf("expected non-positive input to map to 0, got %v", got)
	}
}
