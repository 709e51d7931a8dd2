package core

import "testing"

func TestValidMove(t *testing.T) {
	grid := Grid{
		Width:  10,
		Height: 10,
		Obstacles: map[Position]struct{}{
			{X: 5, Y: 5}: {},
		},
	}

	tests := []struct {
		name      string
		current   Position
		requested Position
		want      bool
	}{
		{"step right", Position{1, 1}, Position{2, 1}, true},
		{"step down", Position{1, 1}, Position{1, 2}, true},
		{"diagonal", Position{1, 1}, Position{2, 2}, true},
		{"stay put", Position{1, 1}, Position{1, 1}, true},
		{"two cells right", Position{1, 1}, Position{3, 1}, false},
		{"two cells diagonal", Position{1, 1}, Position{3, 3}, false},
		{"knight move", Position{1, 1}, Position{3, 2}, false},
		{"negative x", Position{0, 0}, Position{-1, 0}, false},
		{"negative y", Position{0, 0}, Position{0, -1}, false},
		{"past right edge", Position{9, 9}, Position{10, 9}, false},
		{"far out of bounds", Position{1, 1}, Position{100000, 100000}, false},
		{"onto obstacle", Position{4, 5}, Position{5, 5}, false},
		{"next to obstacle", Position{4, 5}, Position{4, 6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidMove(tt.current, tt.requested, grid); got != tt.want {
				t.Errorf("ValidMove(%v, %v) = %v, want %v", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}
