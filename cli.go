package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/metcalfc/lyr/internal/config"
	"github.com/metcalfc/lyr/internal/logging"
	"github.com/metcalfc/lyr/internal/lyrics"
	"github.com/metcalfc/lyr/internal/player"
	"github.com/metcalfc/lyr/internal/session"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type playOptions struct {
	subs       string
	title      string
	backend    string
	configPath string
}

// app is everything a front end needs to run one playback session.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	player player.Player
	shell  *session.Shell
	subs   string
	title  string
}

func newRootCmd() *cobra.Command {
	var opts playOptions

	root := &cobra.Command{
		Use:   "lyr [flags] <audio>",
		Short: "Play audio with synchronized, auto-scrolling lyrics",
		Long: `lyr plays an audio file and shows its SRT subtitles as a scrolling
lyric sheet. The line being sung is highlighted and kept centered;
clicking a line jumps the audio to it.

Examples:
  lyr ordinary.mp3                      Use ordinary.srt next to the audio
  lyr -s lyrics/ordinary.srt song.mp3   Use an explicit subtitle file
  lyr -s https://host/a.srt song.mp3    Fetch subtitles over HTTP
  lyr --backend silent song.mp3         Scroll lyrics without sound`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(args[0], opts)
			if err != nil {
				return err
			}
			defer a.log.Sync()
			defer a.shell.Close()
			return runPlayer(a)
		},
	}

	root.Flags().StringVarP(&opts.subs, "subs", "s", "", "Subtitle file or URL (default: audio path with .srt)")
	root.Flags().StringVarP(&opts.title, "title", "t", "", "Title shown above the lyrics")
	root.Flags().StringVar(&opts.backend, "backend", "", "Playback backend: ffplay or silent (default from config)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/lyr/config.toml)")

	root.AddCommand(newSegmentsCmd(), newAtCmd(), newConfigCmd(&opts))
	return root
}

func newApp(audio string, opts playOptions) (*app, error) {
	cfg, _, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.backend != "" {
		cfg.Player.Backend = strings.ToLower(opts.backend)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	log, err := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(audio); err != nil {
		return nil, fmt.Errorf("audio file: %w", err)
	}

	p, err := player.New(player.Options{
		Backend:    cfg.Player.Backend,
		AudioPath:  audio,
		FFplayPath: cfg.Player.FFplayPath,
		Logger:     log,
	})
	if err != nil {
		log.Warn("falling back to silent playback", zap.Error(err))
		p, err = player.New(player.Options{Backend: player.BackendSilent, AudioPath: audio, Logger: log})
		if err != nil {
			return nil, err
		}
	}

	subs := opts.subs
	if subs == "" {
		subs = defaultSubsPath(audio)
	}
	title := opts.title
	if title == "" {
		title = defaultTitle(audio)
	}

	log.Info("session start", zap.String("audio", audio), zap.String("subs", subs), zap.String("backend", cfg.Player.Backend))
	return &app{
		cfg:    cfg,
		log:    log,
		player: p,
		shell:  session.New(p, log),
		subs:   subs,
		title:  title,
	}, nil
}

// load fetches and parses the subtitles, feeding the result to the shell.
func (a *app) load(ctx context.Context) {
	segments, skipped, err := lyrics.LoadSegments(ctx, a.subs)
	if err != nil {
		a.shell.LoadFailed(err)
		return
	}
	a.shell.Load(segments, skipped)
}

func defaultSubsPath(audio string) string {
	return strings.TrimSuffix(audio, filepath.Ext(audio)) + ".srt"
}

func defaultTitle(audio string) string {
	name := strings.TrimSuffix(filepath.Base(audio), filepath.Ext(audio))
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "♪ Lyrics"
	}
	return "♪ " + cases.Title(language.English).String(name) + " - Lyrics"
}

func newSegmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "segments <subs>",
		Short: "Print the parsed subtitle segments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			segments, skipped, err := lyrics.LoadSegments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, b := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", b)
			}
			printSegments(cmd.OutOrStdout(), segments, isTerminal(cmd.OutOrStdout()))
			return nil
		},
	}
}

func newAtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "at <subs> <seconds>",
		Short: "Show which line is active at a playback position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("position %q: %w", args[1], err)
			}
			segments, _, err := lyrics.LoadSegments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			idx := lyrics.ActiveIndex(t, segments)
			if idx < 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "-1")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", idx, lyrics.DisplayText(segments[idx].Text))
			return nil
		},
	}
}

func newConfigCmd(opts *playOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write a sample configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if len(args) > 0 {
				path = args[0]
			}
			if path == "" {
				path = config.DefaultConfigPath()
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config already exists: %s", path)
			}
			if err := config.CreateSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})
	return cfgCmd
}

func printSegments(w io.Writer, segments []lyrics.Segment, pretty bool) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Text"})
	for i, seg := range segments {
		tw.AppendRow(table.Row{
			i,
			strconv.FormatFloat(seg.Start, 'f', 3, 64),
			strconv.FormatFloat(seg.End, 'f', 3, 64),
			lyrics.DisplayText(seg.Text),
		})
	}

	if !pretty {
		tw.RenderCSV()
		return
	}
	tw.SetStyle(table.StyleRounded)
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})
	tw.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
