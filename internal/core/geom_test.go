package core

import "testing"

func TestBoxContains(t *testing.T) {
	b := BoxAround(Vec2{X: 100, Y: 50}, 78, 92)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"centre", Vec2{X: 100, Y: 50}, true},
		{"top-left corner", Vec2{X: 61, Y: 4}, true},
		{"right edge (exclusive)", Vec2{X: 139, Y: 50}, false},
		{"bottom edge (exclusive)", Vec2{X: 100, Y: 96}, false},
		{"outside left", Vec2{X: 60, Y: 50}, false},
		{"outside top", Vec2{X: 100, Y: 3}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
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

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, expected float64
	}{
		{520, 270, 0, 520},
		{520, 270, 1, 270},
		{1, 2.1, 0.5, 1.55},
	}

	for _, tc := range tests {
		got := Lerp(tc.a, tc.b, tc.t)
		if diff := got - tc.expected; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("Lerp(%v, %v, %v) = %v, expected %v", tc.a, tc.b, tc.t, got, tc.expected)
		}
	}
}

func TestVec2Ops(t *testing.T) {
	v := Vec2{X: 1, Y: 2}.Add(Vec2{X: 3, Y: 4})
	if v.X != 4 || v.Y != 6 {
		t.Errorf("Add = %v, expected {4 6}", v)
	}
}
