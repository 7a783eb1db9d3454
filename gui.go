//go:build gui

package main

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/metcalfc/lyr/internal/lyrics"
	"github.com/metcalfc/lyr/internal/player"
	"github.com/metcalfc/lyr/internal/session"
)

const scrollDuration = 400 * time.Millisecond

// parseHexColor reads #RGB or #RRGGBB, falling back to fallback.
func parseHexColor(s string, fallback color.Color) color.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func runPlayer(a *app) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fa := fyneapp.New()
	w := fa.NewWindow(a.title)

	highlight := parseHexColor(a.cfg.Display.HighlightColor, color.NRGBA{R: 255, G: 170, A: 255})
	dim := parseHexColor(a.cfg.Display.DimColor, color.Gray{Y: 136})
	textSize := theme.TextSize() * 1.4

	snap := a.shell.Snapshot()

	titleText := canvas.NewText(a.title, color.White)
	titleText.TextSize = textSize
	titleText.TextStyle.Bold = true
	titleText.Alignment = fyne.TextAlignCenter

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	notice := widget.NewLabel("Loading lyrics...")
	notice.Alignment = fyne.TextAlignCenter
	notice.TextStyle.Italic = true

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	newRow := func() fyne.CanvasObject {
		t := canvas.NewText("", dim)
		t.TextSize = textSize
		t.Alignment = fyne.TextAlignCenter
		return t
	}

	list := widget.NewList(
		func() int { return len(snap.Segments) },
		newRow,
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			t := obj.(*canvas.Text)
			t.Text = lyrics.DisplayText(snap.Segments[id].Text)
			t.Color = dim
			t.TextStyle.Bold = false
			if id == snap.Current {
				t.Color = highlight
				t.TextStyle.Bold = true
			}
			t.Refresh()
		},
	)
	list.HideSeparators = true

	var anim *fyne.Animation
	rowHeight := newRow().MinSize().Height
	scrollToCurrent := func(jump bool) {
		heights := make([]float64, len(snap.Segments))
		for i := range heights {
			heights[i] = float64(rowHeight)
		}
		layout := lyrics.NewLayout(heights, float64(theme.Padding()))
		target, ok := layout.Target(snap.Current, float64(list.Size().Height))
		if !ok {
			return
		}
		if anim != nil {
			anim.Stop()
		}
		to := float32(target)
		if jump {
			list.ScrollToOffset(to)
			return
		}
		from := list.GetScrollOffset()
		anim = fyne.NewAnimation(scrollDuration, func(f float32) {
			list.ScrollToOffset(from + (to-from)*f)
		})
		anim.Curve = fyne.AnimationEaseInOut
		anim.Start()
	}

	// refresh re-reads the shell and rescrolls when the active line moved.
	refresh := func() {
		prev := snap.Current
		updateAll(a, &snap, list, statusLabel, progress, notice)
		if snap.Current != prev {
			scrollToCurrent(false)
		}
	}
	list.OnSelected = func(id widget.ListItemID) {
		list.UnselectAll()
		if err := a.shell.Select(id); err != nil {
			a.log.Warn("select line", zap.Int("line", id), zap.Error(err))
			return
		}
		refresh()
	}

	playButton := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		if err := a.shell.TogglePlay(); err != nil {
			a.log.Warn("toggle playback", zap.Error(err))
		}
		refresh()
	})

	body := container.NewStack(list, container.NewCenter(notice))
	controls := container.NewBorder(nil, nil, playButton, nil, statusLabel)
	footer := container.NewVBox(progress, controls,
		widget.NewLabel("SPACE: play/pause  ←/→: seek  ↑/↓: line  F: fullscreen  Q: quit"))

	w.SetContent(container.NewBorder(titleText, footer, nil, nil, body))

	var closeOnce sync.Once
	cancelTicks := func() {}
	stop := func() {
		closeOnce.Do(func() {
			cancel()
			cancelTicks()
		})
	}

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		var err error
		step := a.cfg.Player.SeekStepSeconds
		switch key.Name {
		case fyne.KeySpace:
			err = a.shell.TogglePlay()
		case fyne.KeyLeft:
			err = a.shell.SeekBy(-step)
		case fyne.KeyRight:
			err = a.shell.SeekBy(step)
		case fyne.KeyUp:
			err = a.shell.Prev()
		case fyne.KeyDown:
			err = a.shell.Next()
		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())
			return
		case fyne.KeyQ, fyne.KeyEscape:
			stop()
			fa.Quit()
			return
		default:
			return
		}
		if err != nil {
			a.log.Debug("playback control", zap.String("key", string(key.Name)), zap.Error(err))
		}
		playButton.SetIcon(playIcon(a.shell.Snapshot()))
		refresh()
	})

	cancelTicks = player.Subscribe(a.player, a.cfg.PollInterval(), func(float64) {
		changed := a.shell.Tick()
		fyne.Do(func() {
			playButton.SetIcon(playIcon(a.shell.Snapshot()))
			if changed {
				refresh()
				return
			}
			updateAll(a, &snap, list, statusLabel, progress, notice)
		})
	})

	go func() {
		a.load(ctx)
		fyne.Do(func() {
			updateAll(a, &snap, list, statusLabel, progress, notice)
			list.Refresh()
			scrollToCurrent(true)
		})
	}()

	w.SetOnClosed(stop)
	w.Resize(fyne.NewSize(800, 600))
	updateAll(a, &snap, list, statusLabel, progress, notice)
	w.ShowAndRun()
	stop()
	return nil
}

func playIcon(snap session.Snapshot) fyne.Resource {
	if snap.Playing {
		return theme.MediaPauseIcon()
	}
	return theme.MediaPlayIcon()
}

// updateAll copies the shell state into the widgets.
func updateAll(a *app, snap *session.Snapshot, list *widget.List, status *widget.Label, progress *widget.ProgressBar, notice *widget.Label) {
	prev := snap.Current
	*snap = a.shell.Snapshot()

	switch {
	case snap.Phase != session.Idle:
		notice.Hide()
	case snap.Ready:
		notice.SetText("No lyrics available. Audio only.")
		notice.Show()
	default:
		notice.Show()
	}

	if snap.Current != prev {
		list.Refresh()
	}

	pos := lyrics.FormatTime(snap.Position)
	if snap.Duration > 0 {
		pos += " / " + lyrics.FormatTime(snap.Duration)
	}
	line := "-"
	if snap.Current >= 0 {
		line = strconv.Itoa(snap.Current + 1)
	}
	state := "▶"
	if !snap.Playing {
		state = "⏸"
	}
	status.SetText(fmt.Sprintf("%s %s | Line %s/%d", state, pos, line, len(snap.Segments)))
	progress.SetValue(snap.Progress())
}
