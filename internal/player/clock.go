package player

import (
	"sync"
	"time"
)

// Clock is a Player that only keeps time. It backs the silent backend and
// tracks position for backends whose process cannot report it.
type Clock struct {
	mu       sync.Mutex
	now      func() time.Time
	duration float64
	base     float64
	started  time.Time
	playing  bool
}

// NewClock creates a paused clock at 0. A duration of 0 means unbounded.
func NewClock(duration float64) *Clock {
	return &Clock{now: time.Now, duration: duration}
}

// Position returns the current position, stopping the clock at the end.
func (c *Clock) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *Clock) position() float64 {
	if !c.playing {
		return c.base
	}
	pos := c.base + c.now().Sub(c.started).Seconds()
	if c.duration > 0 && pos >= c.duration {
		c.base = c.duration
		c.playing = false
		return c.base
	}
	return pos
}

// Duration returns the length of the audio in seconds, 0 if unknown.
func (c *Clock) Duration() float64 { return c.duration }

// Playing reports whether the clock is running.
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position()
	return c.playing
}

// Play starts the clock. Playing from the end restarts at 0.
func (c *Clock) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.playing {
		return nil
	}
	if c.duration > 0 && c.base >= c.duration {
		c.base = 0
	}
	c.started = c.now()
	c.playing = true
	return nil
}

// Pause stops the clock at its current position.
func (c *Clock) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.base = c.position()
	c.playing = false
	return nil
}

// Seek moves to seconds, clamped to [0, duration].
func (c *Clock) Seek(seconds float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if c.duration > 0 && seconds > c.duration {
		seconds = c.duration
	}
	c.base = seconds
	c.started = c.now()
	return nil
}

// Close stops the clock.
func (c *Clock) Close() error {
	return c.Pause()
}

// finish marks playback ended at the end of the audio.
func (c *Clock) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.duration > 0 {
		c.base = c.duration
	} else {
		c.base = c.position()
	}
	c.playing = false
}
