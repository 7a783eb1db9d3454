package lyrics

import (
	"math"
	"sort"

	"github.com/charmbracelet/harmonica"
)

// ScrollOffset returns the scroll offset that vertically centers a line of
// the given top and height inside a container of containerHeight.
func ScrollOffset(containerHeight, lineTop, lineHeight float64) float64 {
	return lineTop - containerHeight/2 + lineHeight/2
}

// ClampOffset limits offset to the scrollable range of a container.
func ClampOffset(offset, contentHeight, containerHeight float64) float64 {
	maxOffset := math.Max(0, contentHeight-containerHeight)
	return math.Min(math.Max(offset, 0), maxOffset)
}

// Layout records where each rendered line sits inside the scroll content.
type Layout struct {
	tops    []float64
	heights []float64
	gap     float64
}

// NewLayout stacks lines of the given heights top to bottom with gap between
// consecutive lines.
func NewLayout(heights []float64, gap float64) Layout {
	l := Layout{
		tops:    make([]float64, len(heights)),
		heights: append([]float64(nil), heights...),
		gap:     gap,
	}
	var y float64
	for i, h := range heights {
		l.tops[i] = y
		y += h + gap
	}
	return l
}

// Len returns the number of lines laid out.
func (l Layout) Len() int { return len(l.tops) }

// Line returns the top and height of line i.
func (l Layout) Line(i int) (top, height float64, ok bool) {
	if i < 0 || i >= len(l.tops) {
		return 0, 0, false
	}
	return l.tops[i], l.heights[i], true
}

// ContentHeight returns the total height of the laid out lines.
func (l Layout) ContentHeight() float64 {
	n := len(l.tops)
	if n == 0 {
		return 0
	}
	return l.tops[n-1] + l.heights[n-1]
}

// LineAt returns the line covering content position y, or -1 when y falls
// outside every line (including the gaps between lines).
func (l Layout) LineAt(y float64) int {
	i := sort.Search(len(l.tops), func(i int) bool { return l.tops[i] > y }) - 1
	if i < 0 || y >= l.tops[i]+l.heights[i] {
		return -1
	}
	return i
}

// Target returns the clamped offset centering line i in a container of the
// given height. ok is false when the line has not been laid out.
func (l Layout) Target(i int, containerHeight float64) (offset float64, ok bool) {
	top, height, ok := l.Line(i)
	if !ok {
		return 0, false
	}
	offset = ScrollOffset(containerHeight, top, height)
	return ClampOffset(offset, l.ContentHeight(), containerHeight), true
}

// Scroller animates a scroll offset toward a target with a critically damped
// spring, one frame per Step.
type Scroller struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

// NewScroller creates a Scroller stepping at the given frame rate.
func NewScroller(fps int) *Scroller {
	return &Scroller{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

// SetTarget sets the offset the scroller moves toward.
func (s *Scroller) SetTarget(offset float64) { s.target = offset }

// Jump moves straight to offset without animating.
func (s *Scroller) Jump(offset float64) {
	s.pos, s.vel, s.target = offset, 0, offset
}

// Offset returns the current animated offset.
func (s *Scroller) Offset() float64 { return s.pos }

// Settled reports whether the scroller has reached its target.
func (s *Scroller) Settled() bool { return s.pos == s.target && s.vel == 0 }

// Step advances the animation by one frame and returns the new offset.
func (s *Scroller) Step() float64 {
	if s.Settled() {
		return s.pos
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos, s.vel = s.target, 0
	}
	return s.pos
}
