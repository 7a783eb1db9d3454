// Package session holds the state of one lyric playback session: the audio
// handle, the parsed segments and the active line.
package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/metcalfc/lyr/internal/lyrics"
	"github.com/metcalfc/lyr/internal/player"
)

// Phase is the coarse state of a session.
type Phase int

const (
	// Idle means no segments are loaded (yet, or the load failed).
	Idle Phase = iota
	// Loaded means segments are present but no line is active.
	Loaded
	// Tracking means a line is active.
	Tracking
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loaded:
		return "loaded"
	case Tracking:
		return "tracking"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// ErrNoSegment is returned when selecting a line that does not exist.
var ErrNoSegment = errors.New("no such segment")

// Snapshot is an immutable view of a session for rendering.
type Snapshot struct {
	Phase    Phase
	Segments []lyrics.Segment // shared, never modified after Load
	Current  int
	Position float64
	Duration float64
	Playing  bool
	Ready    bool // the subtitle fetch has finished, successfully or not
	LoadErr  error
}

// Active returns the active segment, if any.
func (s Snapshot) Active() (lyrics.Segment, bool) {
	if s.Current < 0 || s.Current >= len(s.Segments) {
		return lyrics.Segment{}, false
	}
	return s.Segments[s.Current], true
}

// Progress returns the playback position as a fraction of the duration.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := s.Position / s.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Shell owns the player, the segments and the active index. All state
// changes go through Load, LoadFailed, Tick and the playback controls.
type Shell struct {
	mu       sync.Mutex
	player   player.Player
	log      *zap.Logger
	segments []lyrics.Segment
	current  int
	ready    bool
	loadErr  error
}

// New creates an idle Shell around p.
func New(p player.Player, log *zap.Logger) *Shell {
	if log == nil {
		log = zap.NewNop()
	}
	return &Shell{player: p, log: log, current: -1}
}

// Load installs the parsed segments and recomputes the active line.
func (s *Shell) Load(segments []lyrics.Segment, skipped []*lyrics.BlockError) {
	for _, b := range skipped {
		s.log.Warn("skipped subtitle block", zap.Int("block", b.Block), zap.String("reason", b.Reason), zap.String("line", b.Line))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.segments = segments
	s.ready = true
	s.loadErr = nil
	s.current = lyrics.ActiveIndex(s.player.Position(), s.segments)
	s.log.Info("subtitles loaded", zap.Int("segments", len(segments)), zap.Int("skipped", len(skipped)))
}

// LoadFailed records a failed fetch. The session stays idle and audio
// remains playable.
func (s *Shell) LoadFailed(err error) {
	s.log.Error("load subtitles", zap.Error(err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = true
	s.loadErr = err
}

// Tick recomputes the active line from the player position and reports
// whether it changed.
func (s *Shell) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := lyrics.ActiveIndex(s.player.Position(), s.segments)
	if idx == s.current {
		return false
	}
	s.current = idx
	return true
}

// Select seeks to the start of segment i and resumes playback.
func (s *Shell) Select(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(i)
}

func (s *Shell) selectLocked(i int) error {
	if i < 0 || i >= len(s.segments) {
		return fmt.Errorf("select line %d: %w", i, ErrNoSegment)
	}
	if err := s.player.Seek(s.segments[i].Start); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	if err := s.player.Play(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	s.current = lyrics.ActiveIndex(s.player.Position(), s.segments)
	return nil
}

// Prev jumps to the start of the line before the active one.
func (s *Shell) Prev() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(lyrics.PrevStart(s.current, s.segments))
}

// Next jumps to the start of the line after the active one.
func (s *Shell) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(lyrics.NextStart(s.current, s.segments))
}

// TogglePlay pauses a playing player or resumes a paused one.
func (s *Shell) TogglePlay() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player.Playing() {
		return s.player.Pause()
	}
	return s.player.Play()
}

// SeekBy moves the playback position by delta seconds.
func (s *Shell) SeekBy(delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.player.Position() + delta
	if pos < 0 {
		pos = 0
	}
	if err := s.player.Seek(pos); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	s.current = lyrics.ActiveIndex(s.player.Position(), s.segments)
	return nil
}

// Snapshot returns the current state for rendering.
func (s *Shell) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase := Idle
	switch {
	case len(s.segments) == 0:
	case s.current >= 0:
		phase = Tracking
	default:
		phase = Loaded
	}

	return Snapshot{
		Phase:    phase,
		Segments: s.segments,
		Current:  s.current,
		Position: s.player.Position(),
		Duration: s.player.Duration(),
		Playing:  s.player.Playing(),
		Ready:    s.ready,
		LoadErr:  s.loadErr,
	}
}

// Close stops playback.
func (s *Shell) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player.Close()
}
