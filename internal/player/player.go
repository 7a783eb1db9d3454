// Package player provides the audio playback handles the lyric view follows.
package player

import (
	"fmt"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Player is a playback handle reporting its position in seconds.
type Player interface {
	Position() float64
	Duration() float64
	Playing() bool
	Play() error
	Pause() error
	Seek(seconds float64) error
	Close() error
}

// Backend names accepted by New.
const (
	BackendFFplay = "ffplay"
	BackendSilent = "silent"
)

// Options selects and configures a playback backend.
type Options struct {
	Backend    string
	AudioPath  string
	FFplayPath string
	Duration   float64 // seconds; 0 means probe, or unknown when probing fails
	Logger     *zap.Logger
}

// New opens a player for opts.AudioPath using the requested backend.
func New(opts Options) (Player, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	duration := opts.Duration
	if duration <= 0 && opts.AudioPath != "" {
		d, err := ProbeDuration(opts.AudioPath)
		if err != nil {
			log.Warn("probe audio duration", zap.String("path", opts.AudioPath), zap.Error(err))
		} else {
			duration = d
		}
	}

	switch opts.Backend {
	case BackendSilent:
		return NewClock(duration), nil
	case BackendFFplay, "":
		binary := opts.FFplayPath
		if binary == "" {
			binary = "ffplay"
		}
		resolved, err := exec.LookPath(binary)
		if err != nil {
			return nil, fmt.Errorf("ffplay backend: %w", err)
		}
		return NewFFplay(resolved, opts.AudioPath, duration, log), nil
	default:
		return nil, fmt.Errorf("unknown player backend %q", opts.Backend)
	}
}

// Subscribe calls fn with the player's position every interval until the
// returned cancel func is called. cancel blocks until delivery has stopped.
func Subscribe(p Player, interval time.Duration, fn func(position float64)) (cancel func()) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	var once sync.Once

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn(p.Position())
			}
		}
	}()

	return func() {
		once.Do(func() { close(done) })
		<-stopped
	}
}
