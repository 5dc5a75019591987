package core

import (
	"math"
	"testing"
)

func TestDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec2
		expected float64
	}{
		{"same point", Vec2{10, 10}, Vec2{10, 10}, 0},
		{"horizontal", Vec2{0, 0}, Vec2{3, 0}, 3},
		{"pythagorean", Vec2{0, 0}, Vec2{3, 4}, 5},
		{"negative coords", Vec2{-3, -4}, Vec2{0, 0}, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Dist(tc.a, tc.b)
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() = %f, expected %f", got, tc.expected)
			}
			if reverse := Dist(tc.b, tc.a); math.Abs(reverse-got) > 1e-9 {
				t.Errorf("Dist() not symmetric: %f vs %f", got, reverse)
			}
		})
	}
}

func TestWithinIsStrict(t *testing.T) {
	a := Vec2{0, 0}
	if Within(a, Vec2{35, 0}, 35) {
		t.Error("point exactly on the radius should not be within")
	}
	if !Within(a, Vec2{34.9, 0}, 35) {
		t.Error("point inside the radius should be within")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestViewportToCell(t *testing.T) {
	v := NewViewport(320, 480, 2, 1, 32, 24)

	tests := []struct {
		name   string
		p      Vec2
		cx, cy int
	}{
		{"origin", Vec2{0, 0}, 2, 1},
		{"center", Vec2{160, 240}, 18, 13},
		{"far edge clamps", Vec2{320, 480}, 33, 24},
		{"outside clamps", Vec2{-50, 1000}, 2, 24},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy := v.ToCell(tc.p)
			if cx != tc.cx || cy != tc.cy {
				t.Errorf("ToCell(%v) = (%d, %d), expected (%d, %d)", tc.p, cx, cy, tc.cx, tc.cy)
			}
		})
	}
}
