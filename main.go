//go:build !gui

package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/metcalfc/lyr/internal/config"
	"github.com/metcalfc/lyr/internal/lyrics"
	"github.com/metcalfc/lyr/internal/session"
)

const (
	headerHeight = 2 // title + blank line
	footerHeight = 3 // status, progress bar, help
	lineGap      = 1
	frameRate    = 60
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

type keyMap struct {
	Play    key.Binding
	Back    key.Binding
	Forward key.Binding
	Prev    key.Binding
	Next    key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Back, k.Forward, k.Prev, k.Next, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Play:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
	Back:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "back")),
	Forward: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "forward")),
	Prev:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "prev line")),
	Next:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "next line")),
	Quit:    key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type model struct {
	shell    *session.Shell
	title    string
	seekStep float64
	poll     time.Duration
	load     func()
	log      *zap.Logger

	lineStyle      lipgloss.Style
	highlightStyle lipgloss.Style

	viewport viewport.Model
	progress progress.Model
	help     help.Model
	scroller *lyrics.Scroller
	layout   lyrics.Layout
	snap     session.Snapshot

	animating bool
	quitting  bool
	width     int
	height    int
}

type tickMsg time.Time

type frameMsg time.Time

type loadedMsg struct{}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{tick(m.poll)}
	if m.load != nil {
		load := m.load
		cmds = append(cmds, func() tea.Msg {
			load()
			return loadedMsg{}
		})
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		m.snap = m.shell.Snapshot()
		m.render()
		m.scrollToCurrent(true)
		return m, nil

	case tickMsg:
		if m.quitting {
			return m, nil
		}
		changed := m.shell.Tick()
		m.snap = m.shell.Snapshot()
		if !changed {
			return m, tick(m.poll)
		}
		m.render()
		scroll := m.scrollToCurrent(false)
		return m, tea.Batch(tick(m.poll), scroll)

	case frameMsg:
		off := m.scroller.Step()
		m.viewport.SetYOffset(int(math.Round(off)))
		if m.scroller.Settled() {
			m.animating = false
			return m, nil
		}
		return m, frame()
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Play):
		err = m.shell.TogglePlay()
	case key.Matches(msg, keys.Back):
		err = m.shell.SeekBy(-m.seekStep)
	case key.Matches(msg, keys.Forward):
		err = m.shell.SeekBy(m.seekStep)
	case key.Matches(msg, keys.Prev):
		err = m.shell.Prev()
	case key.Matches(msg, keys.Next):
		err = m.shell.Next()
	default:
		return m, nil
	}
	if err != nil {
		m.log.Debug("playback control", zap.String("key", msg.String()), zap.Error(err))
	}
	return m.refresh()
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroller.Jump(float64(max(m.viewport.YOffset-3, 0)))
		m.viewport.SetYOffset(int(m.scroller.Offset()))
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.viewport.SetYOffset(m.viewport.YOffset + 3)
		m.scroller.Jump(float64(m.viewport.YOffset))
		return m, nil
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress:
		return m, nil
	}

	idx := m.lineAtRow(msg.Y)
	if idx < 0 {
		return m, nil
	}
	if err := m.shell.Select(idx); err != nil {
		m.log.Warn("select line", zap.Int("line", idx), zap.Error(err))
		return m, nil
	}
	return m.refresh()
}

// lineAtRow maps a screen row to the lyric line drawn there, or -1.
func (m model) lineAtRow(row int) int {
	y := row - headerHeight
	if y < 0 || y >= m.viewport.Height {
		return -1
	}
	return m.layout.LineAt(float64(y + m.viewport.YOffset))
}

// refresh re-reads the shell after a user action and scrolls to the result.
func (m model) refresh() (tea.Model, tea.Cmd) {
	prev := m.snap.Current
	m.snap = m.shell.Snapshot()
	if m.snap.Current == prev {
		return m, nil
	}
	m.render()
	scroll := m.scrollToCurrent(false)
	return m, scroll
}

func (m *model) resize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-headerHeight-footerHeight, 1)
	m.progress.Width = max(width-2, 10)
	m.help.Width = width
	m.render()
	m.scrollToCurrent(true)
}

// render lays out every segment and loads the result into the viewport.
func (m *model) render() {
	width := max(m.viewport.Width, 1)
	blocks := make([]string, len(m.snap.Segments))
	heights := make([]float64, len(m.snap.Segments))

	for i, seg := range m.snap.Segments {
		style := m.lineStyle
		if i == m.snap.Current {
			style = m.highlightStyle
		}
		blocks[i] = style.Width(width).Align(lipgloss.Center).Render(lyrics.DisplayText(seg.Text))
		heights[i] = float64(lipgloss.Height(blocks[i]))
	}

	m.layout = lyrics.NewLayout(heights, lineGap)
	m.viewport.SetContent(strings.Join(blocks, strings.Repeat("\n", lineGap+1)))
}

// scrollToCurrent centers the active line, animating unless jump is set.
func (m *model) scrollToCurrent(jump bool) tea.Cmd {
	target, ok := m.layout.Target(m.snap.Current, float64(m.viewport.Height))
	if !ok {
		return nil
	}
	if jump {
		m.scroller.Jump(target)
		m.viewport.SetYOffset(int(math.Round(target)))
		return nil
	}
	m.scroller.SetTarget(target)
	if m.animating {
		return nil
	}
	m.animating = true
	return frame()
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.MaxWidth(max(m.width, 1)).Render(m.title))
	sb.WriteString("\n\n")

	switch {
	case m.snap.Phase != session.Idle:
		sb.WriteString(m.viewport.View())
	case m.snap.Ready:
		sb.WriteString(m.padBody(noticeStyle.Render("No lyrics available. Audio only.")))
	default:
		sb.WriteString(m.padBody(noticeStyle.Render("Loading lyrics...")))
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(m.snap.Progress()))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(keys))

	return sb.String()
}

func (m model) statusLine() string {
	state := "▶"
	if !m.snap.Playing {
		state = pausedStyle.Render("⏸")
	}

	pos := lyrics.FormatTime(m.snap.Position)
	if m.snap.Duration > 0 {
		pos += " / " + lyrics.FormatTime(m.snap.Duration)
	}

	line := "-"
	if m.snap.Current >= 0 {
		line = fmt.Sprintf("%d", m.snap.Current+1)
	}

	return state + statusStyle.Render(fmt.Sprintf("%s | Line %s/%d", pos, line, len(m.snap.Segments)))
}

// padBody fills the lyric area with a single centered notice.
func (m model) padBody(notice string) string {
	return lipgloss.Place(max(m.width, 1), m.viewport.Height, lipgloss.Center, lipgloss.Center, notice)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func newModel(shell *session.Shell, title string, cfg config.Config, load func(), log *zap.Logger) model {
	if log == nil {
		log = zap.NewNop()
	}
	m := model{
		shell:    shell,
		title:    title,
		seekStep: cfg.Player.SeekStepSeconds,
		poll:     cfg.PollInterval(),
		load:     load,
		log:      log,

		lineStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Display.DimColor)),
		highlightStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(cfg.Display.HighlightColor)),

		viewport: viewport.New(80, 24-headerHeight-footerHeight),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		help:     help.New(),
		scroller: lyrics.NewScroller(frameRate),
		snap:     shell.Snapshot(),
		width:    80,
		height:   24,
	}
	m.viewport.MouseWheelEnabled = false
	m.progress.Width = 78
	m.render()
	return m
}

func runPlayer(a *app) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := newModel(a.shell, a.title, *a.cfg, func() { a.load(ctx) }, a.log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}
