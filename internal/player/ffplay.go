package player

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/zap"
)

// FFplay plays audio through an ffplay child process. ffplay has no control
// channel, so pausing kills the process and resuming or seeking starts a new
// one at the clock's position.
type FFplay struct {
	*Clock

	mu     sync.Mutex
	binary string
	path   string
	log    *zap.Logger
	cmd    *exec.Cmd
	gen    int

	newCmd func(name string, args ...string) *exec.Cmd
}

// NewFFplay creates a paused ffplay-backed player for path.
func NewFFplay(binary, path string, duration float64, log *zap.Logger) *FFplay {
	return &FFplay{
		Clock:  NewClock(duration),
		binary: binary,
		path:   path,
		log:    log,
		newCmd: exec.Command,
	}
}

// Args returns the ffplay arguments for playing from offset seconds.
func (f *FFplay) Args(offset float64) []string {
	return []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "quiet",
		"-ss", strconv.FormatFloat(offset, 'f', 3, 64),
		f.path,
	}
}

// Play starts ffplay at the current position.
func (f *FFplay) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cmd != nil {
		if f.Clock.Playing() {
			return nil
		}
		// The clock reached the end before ffplay exited.
		f.stop()
	}
	if err := f.Clock.Play(); err != nil {
		return err
	}
	if err := f.start(f.Clock.Position()); err != nil {
		f.Clock.Pause()
		return err
	}
	return nil
}

// Pause stops ffplay and holds the position.
func (f *FFplay) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stop()
	return f.Clock.Pause()
}

// Seek moves to seconds, restarting ffplay there if it was playing.
func (f *FFplay) Seek(seconds float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.Clock.Seek(seconds); err != nil {
		return err
	}
	if f.cmd == nil {
		return nil
	}
	f.stop()
	if !f.Clock.Playing() {
		return nil
	}
	return f.start(f.Clock.Position())
}

// Close stops playback.
func (f *FFplay) Close() error {
	return f.Pause()
}

func (f *FFplay) start(offset float64) error {
	cmd := f.newCmd(f.binary, f.Args(offset)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffplay: %w", err)
	}
	f.gen++
	f.cmd = cmd
	f.log.Debug("ffplay started", zap.Float64("offset", offset), zap.Int("pid", cmd.Process.Pid))

	gen := f.gen
	go f.wait(cmd, gen)
	return nil
}

func (f *FFplay) stop() {
	if f.cmd == nil {
		return
	}
	if err := f.cmd.Process.Kill(); err != nil {
		f.log.Debug("kill ffplay", zap.Error(err))
	}
	f.cmd = nil
	f.gen++
}

// wait reaps cmd; an exit nobody asked for means the audio ran out.
func (f *FFplay) wait(cmd *exec.Cmd, gen int) {
	err := cmd.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.gen {
		return
	}
	f.cmd = nil
	if err != nil {
		f.log.Warn("ffplay exited", zap.Error(err))
	}
	f.Clock.finish()
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeDuration returns the length of an audio file in seconds via ffprobe.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (float64, error) {
	var probe probeOutput
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}
	return seconds, nil
}
