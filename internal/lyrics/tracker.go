package lyrics

// ActiveIndex returns the index of the segment playing at t, or -1 if t falls
// before the first segment. A segment stays active until the next one starts;
// its own End is ignored so gaps between lines never leave nothing highlighted.
func ActiveIndex(t float64, segments []Segment) int {
	for i, seg := range segments {
		if !(t >= seg.Start) {
			continue
		}
		if i == len(segments)-1 || t < segments[i+1].Start {
			return i
		}
	}
	return -1
}

// PrevStart returns the index of the segment before current, clamped to 0.
// With no active segment it returns 0.
func PrevStart(current int, segments []Segment) int {
	if len(segments) == 0 {
		return -1
	}
	if current <= 0 {
		return 0
	}
	if current > len(segments) {
		return len(segments) - 1
	}
	return current - 1
}

// NextStart returns the index of the segment after current, clamped to the
// last segment.
func NextStart(current int, segments []Segment) int {
	if len(segments) == 0 {
		return -1
	}
	if current+1 >= len(segments) {
		return len(segments) - 1
	}
	if current < 0 {
		return 0
	}
	return current + 1
}
