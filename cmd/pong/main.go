// pong is a two-paddle Pong game for the terminal.
//
// Usage:
//
//	pong play               - Play a match (one player by default)
//	pong menu               - Pick a mode interactively
//	pong demo               - Watch the computer play itself
//	pong serve              - Start SSH server for remote play
//	pong history            - Show recent matches
//	pong config             - Print or install the default config
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible matches
//	--db <path>           - Set database path (default: ~/.pong/pong.db)
//	--config <path>       - Use a custom pong.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pong",
	Short: "Pong - two paddles, one ball, in your terminal",
	Long: `Pong is a vertical two-paddle game: red defends the top edge,
blue the bottom. Each miss costs a life; the last paddle standing wins.

Available commands:
  play     - Play a match directly
  menu     - Interactive mode picker
  demo     - Computer against computer
  serve    - Start SSH server for remote play
  history  - View recent matches
  config   - Print or install the default config

Examples:
  pong play
  pong play --players 2
  pong play --difficulty hard --spectate :8080
  pong demo --headless --duration 1m
  pong serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", pong.DefaultFPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.pong/pong.db", "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom pong.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the command logger. Full-screen commands pass io.Discard
// as the fallback so log lines never tear the UI; --log-file wins either way.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pong",
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadSetup reads the config, applies --difficulty and --fps when given
// and turns the result into a match setup.
func loadSetup(cmd *cobra.Command) (config.PongConfig, tui.MatchSetup, error) {
	cfg, err := config.LoadPong(flagConfig)
	if err != nil {
		return cfg, tui.MatchSetup{}, err
	}

	if cmd.Flags().Changed("difficulty") {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, tui.MatchSetup{}, err
		}
		config.ApplyPongPreset(&cfg, preset)
	}
	if cmd.Flags().Changed("fps") {
		cfg.Field.FPS = flagFPS
	}

	opts, err := pong.OptionsFromConfig(cfg)
	if err != nil {
		return cfg, tui.MatchSetup{}, err
	}
	opts.Seed = flagSeed

	return cfg, tui.MatchSetup{
		Width:   cfg.Field.Width,
		Height:  cfg.Field.Height,
		Options: opts,
	}, nil
}

// runtimeConfig sizes the UI from the controlling terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the history database. Play continues without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		return nil
	}
	return store
}

// mutePreference resolves the starting mute state: the stored preference,
// falling back to the config.
func mutePreference(store *storage.Store, cfg config.PongConfig) bool {
	if store == nil {
		return cfg.Audio.Muted
	}
	muted, err := store.Muted(cfg.Audio.Muted)
	if err != nil {
		return cfg.Audio.Muted
	}
	return muted
}
