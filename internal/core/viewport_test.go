package core

import "testing"

func TestViewportScaling(t *testing.T) {
	v := NewViewport(400, 600, 80, 24)

	tests := []struct {
		name          string
		x, y          float64
		wantCol, wantRow int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 200, 300, 40, 12},
		{"far edge", 399, 599, 79, 23},
		{"left of screen", -50, 0, -10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.Col(tc.x); got != tc.wantCol {
				t.Errorf("Col(%v) = %d, expected %d", tc.x, got, tc.wantCol)
			}
			if got := v.Row(tc.y); got != tc.wantRow {
				t.Errorf("Row(%v) = %d, expected %d", tc.y, got, tc.wantRow)
			}
		})
	}
}

func TestViewportSpanKeepsThinObjectsVisible(t *testing.T) {
	v := NewViewport(400, 600, 40, 10)

	// 1 world unit is a tenth of a column.
	r := v.Span(NewBox(100, 0, 1, 1))
	if r.W != 1 || r.H != 1 {
		t.Errorf("Span of a tiny box = %dx%d, expected 1x1", r.W, r.H)
	}

	r = v.Span(NewBox(100, 60, 80, 150))
	if r.X != 10 || r.Y != 1 || r.W != 8 || r.H != 3 {
		t.Errorf("Span = %+v, expected {10 1 8 3}", r)
	}
}
