package lyrics

import "testing"

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                       string
		container, top, height, want float64
	}{
		{"centers line", 100, 200, 20, 160},
		{"first line goes negative", 100, 0, 20, -40},
		{"tall line", 50, 100, 30, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScrollOffset(tt.container, tt.top, tt.height); got != tt.want {
				t.Errorf("ScrollOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClampOffset(t *testing.T) {
	tests := []struct {
		offset, content, container, want float64
	}{
		{-40, 300, 100, 0},
		{150, 300, 100, 150},
		{250, 300, 100, 200},
		{30, 80, 100, 0},
	}

	for _, tt := range tests {
		if got := ClampOffset(tt.offset, tt.content, tt.container); got != tt.want {
			t.Errorf("ClampOffset(%v, %v, %v) = %v, want %v", tt.offset, tt.content, tt.container, got, tt.want)
		}
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout([]float64{1, 2, 1}, 1)

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if h := l.ContentHeight(); h != 6 {
		t.Errorf("ContentHeight() = %v, want 6", h)
	}

	top, height, ok := l.Line(1)
	if !ok || top != 2 || height != 2 {
		t.Errorf("Line(1) = %v, %v, %v", top, height, ok)
	}
	if _, _, ok := l.Line(3); ok {
		t.Error("Line(3) should be out of range")
	}

	hits := map[float64]int{0: 0, 0.5: 0, 1: -1, 2: 1, 3.9: 1, 4: -1, 5: 2, 6: -1, -1: -1}
	for y, want := range hits {
		if got := l.LineAt(y); got != want {
			t.Errorf("LineAt(%v) = %d, want %d", y, got, want)
		}
	}
}

func TestLayoutTarget(t *testing.T) {
	heights := make([]float64, 20)
	for i := range heights {
		heights[i] = 1
	}
	l := NewLayout(heights, 1) // tops at 0,2,4,...; content height 39

	if off, ok := l.Target(10, 10); !ok || off != 15.5 {
		t.Errorf("Target(10) = %v, %v; want 15.5", off, ok)
	}
	if off, _ := l.Target(0, 10); off != 0 {
		t.Errorf("Target(0) = %v, want 0", off)
	}
	if off, _ := l.Target(19, 10); off != 29 {
		t.Errorf("Target(19) = %v, want 29", off)
	}
	if _, ok := l.Target(-1, 10); ok {
		t.Error("Target(-1) should be a no-op")
	}
	if _, ok := NewLayout(nil, 1).Target(0, 10); ok {
		t.Error("Target on empty layout should be a no-op")
	}
}

func TestScrollerConverges(t *testing.T) {
	s := NewScroller(60)
	s.SetTarget(40)

	for i := 0; i < 600 && !s.Settled(); i++ {
		s.Step()
	}
	if !s.Settled() || s.Offset() != 40 {
		t.Errorf("scroller did not settle: offset=%v", s.Offset())
	}
}

func TestScrollerMovesGradually(t *testing.T) {
	s := NewScroller(60)
	s.SetTarget(100)
	first := s.Step()
	if first <= 0 || first >= 100 {
		t.Errorf("first step = %v, want strictly between 0 and 100", first)
	}
}

func TestScrollerJump(t *testing.T) {
	s := NewScroller(60)
	s.Jump(12)
	if !s.Settled() || s.Offset() != 12 {
		t.Errorf("Jump did not settle at 12: %v", s.Offset())
	}
	if got := s.Step(); got != 12 {
		t.Errorf("Step after Jump = %v", got)
	}
}
