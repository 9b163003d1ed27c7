// Package cmd wires the carillon command-line interface.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/carillon/internal/clips"
	"github.com/zjrosen/carillon/internal/config"
	"github.com/zjrosen/carillon/internal/log"
	"github.com/zjrosen/carillon/internal/rating"
	"github.com/zjrosen/carillon/internal/sound"
	"github.com/zjrosen/carillon/internal/telemetry"
	"github.com/zjrosen/carillon/internal/ui/app"
	"github.com/zjrosen/carillon/internal/ui/styles"
	"github.com/zjrosen/carillon/internal/words"
)

var (
	cfg     config.Config
	cfgFile string
	silent  bool
)

var rootCmd = &cobra.Command{
	Use:   "carillon",
	Short: "Rate with musical cues and run spoken word quizzes",
	Long: `Carillon is a terminal rating widget with audible feedback. Each rating
plays a short arpeggio cue and clears itself after a delay. It also runs
word quizzes: random words drawn from a configurable pool, each spoken
through its pre-rendered audio clip.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if silent {
			cfg.UI.Silent = true
		}
		if err := log.Init(cfg.LogFile, cfg.Debug); err != nil {
			return err
		}
		log.Debug(log.CatConfig, "configuration loaded",
			"words_source", cfg.Words.Source, "clips_dir", cfg.Clips.Dir)
		return nil
	},
	RunE: runRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .carillon/config.yaml, ~/.config/carillon/config.yaml)")
	rootCmd.Flags().BoolVar(&silent, "silent", false, "disable all audio output")
}

// Execute runs the root command.
func Execute() {
	defer log.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Mode:   cfg.Theme.Mode,
	}); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, traceWriter())
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdown(flushCtx); err != nil {
			log.Warn(log.CatUI, "telemetry shutdown failed", "error", err)
		}
	}()

	var engine sound.Engine
	var player sound.Player
	if cfg.UI.Silent {
		engine, player = sound.NopEngine{}, sound.NopPlayer{}
	} else {
		exec := sound.NewExecEngine()
		engine, player = exec, exec
	}

	source := words.NewSource(cfg.Words.Source, cfg.Words.CacheTTL,
		words.WithFallback(cfg.Words.Fallback))
	if cfg.Words.Watch {
		if err := words.Watch(ctx, source); err != nil {
			log.Warn(log.CatWords, "word list watch unavailable", "error", err)
		}
	}

	resolver := clips.NewResolver(cfg.Clips.Dir, cfg.Clips.Ext,
		cfg.Timing.AttemptTimeout, player)

	machine := rating.NewMachine(rating.DefaultOptions(), cfg.Timing.AutoClear)
	model := app.New(cfg, machine, engine, source, resolver)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

// traceWriter is the sink for the stdout span exporter. The TUI owns the
// real stdout, so spans go to a file next to the log.
func traceWriter() io.Writer {
	f, err := os.OpenFile(cfg.LogFile+".traces",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard
	}
	return f
}
