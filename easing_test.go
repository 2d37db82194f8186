package forcegraph

import (
	"math"
	"testing"
)

func TestEasingLinear(t *testing.T) {
	fn, ok := Easing("linear")
	if !ok {
		t.Fatal("linear should be registered")
	}
	for _, tc := range []struct{ in, want float64 }{
		{0, 0}, {0.25, 0.25}, {0.5, 0.5}, {1, 1},
	} {
		if got := fn(tc.in); math.Abs(got-tc.want) > 1e-6 {
			t.Errorf("linear(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestEasingClampsInput(t *testing.T) {
	fn, _ := Easing("inQuad")
	if got := fn(-0.5); got != 0 {
		t.Errorf("f(-0.5) = %f, want 0", got)
	}
	if got := fn(1.5); got != 1 {
		t.Errorf("f(1.5) = %f, want 1", got)
	}
}

func TestEasingInQuad(t *testing.T) {
	fn, ok := Easing("inQuad")
	if !ok {
		t.Fatal("inQuad should be registered")
	}
	if got := fn(0.5); math.Abs(got-0.25) > 1e-3 {
		t.Errorf("inQuad(0.5) = %f, want ~0.25", got)
	}
}

func TestEasingUnknownFallsBackToLinear(t *testing.T) {
	fn, ok := Easing("zigzag")
	if ok {
		t.Error("unknown name should report false")
	}
	if got := fn(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("fallback(0.5) = %f, want 0.5 (linear)", got)
	}
}

func TestRegisterEasing(t *testing.T) {
	RegisterEasing("half", func(tt, b, c, d float32) float32 {
		return b + c*(tt/d)*0.5
	})
	defer delete(easings, "half")

	fn, ok := Easing("half")
	if !ok {
		t.Fatal("custom easing should resolve")
	}
	if got := fn(0.5); math.Abs(got-0.25) > 1e-6 {
		t.Errorf("half(0.5) = %f, want 0.25", got)
	}
}
