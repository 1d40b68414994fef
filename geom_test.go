package aspen

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func assertVec2(t *testing.T, got, want Vec2, label string) {
	t.Helper()
	if !approxEqual(got.X, want.X) || !approxEqual(got.Y, want.Y) {
		t.Errorf("%s = (%v, %v), want (%v, %v)", label, got.X, got.Y, want.X, want.Y)
	}
}

// --- Vec2 ---

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{3, 4}
	b := Vec2{1, -2}

	assertVec2(t, a.Add(b), Vec2{4, 2}, "Add")
	assertVec2(t, a.Sub(b), Vec2{2, 6}, "Sub")
	assertVec2(t, a.Mul(b), Vec2{3, -8}, "Mul")
	assertVec2(t, a.Scale(2), Vec2{6, 8}, "Scale")
	if got := a.Dot(b); !approxEqual(got, -5) {
		t.Errorf("Dot = %v, want -5", got)
	}
	if got := a.Length(); !approxEqual(got, 5) {
		t.Errorf("Length = %v, want 5", got)
	}
	if got := a.Distance(Vec2{0, 0}); !approxEqual(got, 5) {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestVec2Normalize(t *testing.T) {
	assertVec2(t, Vec2{3, 4}.Normalize(), Vec2{0.6, 0.8}, "Normalize")
	// Degenerate vector normalizes to zero, not NaN.
	assertVec2(t, Vec2{}.Normalize(), Vec2{}, "Normalize zero")
}

func TestVec2Lerp(t *testing.T) {
	a := Vec2{0, 10}
	b := Vec2{10, 20}
	assertVec2(t, a.Lerp(b, 0), a, "Lerp 0")
	assertVec2(t, a.Lerp(b, 1), b, "Lerp 1")
	assertVec2(t, a.Lerp(b, 0.5), Vec2{5, 15}, "Lerp 0.5")
}

func TestVec2Rotate(t *testing.T) {
	assertVec2(t, Vec2{1, 0}.Rotate(math.Pi/2), Vec2{0, 1}, "Rotate 90")
	assertVec2(t, Vec2{1, 0}.Rotate(math.Pi), Vec2{-1, 0}, "Rotate 180")
	assertVec2(t, Vec2{2, 3}.Rotate(0), Vec2{2, 3}, "Rotate 0")
}

// --- Rect ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 10, 20, 20}
	if !r.Contains(15, 15) {
		t.Error("interior point should be contained")
	}
	if !r.Contains(10, 10) || !r.Contains(30, 30) {
		t.Error("edge points should be contained")
	}
	if r.Contains(9, 15) || r.Contains(15, 31) {
		t.Error("exterior points should not be contained")
	}
}

func TestRectIntersects(t *testing.T) {
	a := Rect{0, 0, 10, 10}
	if !a.Intersects(Rect{5, 5, 10, 10}) {
		t.Error("overlapping rects should intersect")
	}
	if !a.Intersects(Rect{10, 0, 5, 5}) {
		t.Error("edge-adjacent rects should intersect")
	}
	if a.Intersects(Rect{11, 0, 5, 5}) {
		t.Error("separated rects should not intersect")
	}
}

func TestRectClampPoint(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	x, y := r.ClampPoint(-5, 5)
	if x != 0 || y != 5 {
		t.Errorf("ClampPoint(-5, 5) = (%v, %v), want (0, 5)", x, y)
	}
	x, y = r.ClampPoint(15, 20)
	if x != 10 || y != 10 {
		t.Errorf("ClampPoint(15, 20) = (%v, %v), want (10, 10)", x, y)
	}
	x, y = r.ClampPoint(3, 4)
	if x != 3 || y != 4 {
		t.Errorf("interior point should be unchanged, got (%v, %v)", x, y)
	}
}

// --- Range ---

func TestRangeClamp(t *testing.T) {
	r := Range{-1, 1}
	if got := r.Clamp(-2); got != -1 {
		t.Errorf("Clamp(-2) = %v, want -1", got)
	}
	if got := r.Clamp(2); got != 1 {
		t.Errorf("Clamp(2) = %v, want 1", got)
	}
	if got := r.Clamp(0.5); got != 0.5 {
		t.Errorf("Clamp(0.5) = %v, want 0.5", got)
	}
}
