package math

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		x, lo, hi, want float32
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
	}
	for _, tt := range tests {
		if got := Clamp(tt.x, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.x, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestMixEndpoints(t *testing.T) {
	if got := Mix(2, 6, 0); got != 2 {
		t.Errorf("Mix(2, 6, 0) = %v, want 2", got)
	}
	if got := Mix(2, 6, 1); got != 6 {
		t.Errorf("Mix(2, 6, 1) = %v, want 6", got)
	}
	if got := Mix(2, 6, 0.25); got != 3 {
		t.Errorf("Mix(2, 6, 0.25) = %v, want 3", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if got := Smoothstep(0, 1, -1); got != 0 {
		t.Errorf("Smoothstep below edge0 = %v, want 0", got)
	}
	if got := Smoothstep(0, 1, 2); got != 1 {
		t.Errorf("Smoothstep above edge1 = %v, want 1", got)
	}
	if got := Smoothstep(0, 1, 0.5); got != 0.5 {
		t.Errorf("Smoothstep midpoint = %v, want 0.5", got)
	}
	if got := Smoothstep(1, 1, 1); got != 1 {
		t.Errorf("Smoothstep degenerate = %v, want 1", got)
	}
}

func TestFract(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{1.25, 0.25},
		{-0.25, 0.75},
		{3, 0},
	}
	for _, tt := range tests {
		if got := Fract(tt.x); got != tt.want {
			t.Errorf("Fract(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestWrapHours(t *testing.T) {
	tests := []struct {
		h, want float32
	}{
		{25, 1},
		{-1, 23},
		{12, 12},
		{48, 0},
	}
	for _, tt := range tests {
		got := WrapHours(tt.h)
		if math32.Abs(got-tt.want) > 1e-4 {
			t.Errorf("WrapHours(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float32{0, 45, 90, 180, 270} {
		got := RadToDeg(DegToRad(deg))
		if math32.Abs(got-deg) > 1e-4 {
			t.Errorf("RadToDeg(DegToRad(%v)) = %v", deg, got)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1) {
		t.Error("IsFinite(1) = false")
	}
	if IsFinite(math32.NaN()) {
		t.Error("IsFinite(NaN) = true")
	}
	if IsFinite(math32.Inf(1)) {
		t.Error("IsFinite(+Inf) = true")
	}
}
