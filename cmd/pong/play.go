package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/audio"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/spectate"
)

var (
	flagPlayers  int
	flagStrategy string
	flagMute     bool
	flagSpectate string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match straight away.

Controls:
  Left/Right or A/D  - Move blue (bottom)
  J/L                - Move red (top); a computer paddle joins on first use
  P/Space            - Pause
  M                  - Mute
  R                  - New game
  Esc                - Leave the match
  Q/Ctrl+C           - Quit

The mouse works too: drag inside a paddle's zone to steer it, click the
centre square while the ball is serving to pause.

Difficulty options:
  easy   - Slow computer, five lives
  normal - The classic setup, three lives
  hard   - Quick computer, faster serves, two lives
  fixed  - Keep the config's values

Examples:
  pong play
  pong play --players 2
  pong play --strategy exact --difficulty hard
  pong play --spectate :8080`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagPlayers, "players", 1, "Human players: 0, 1 or 2 (unset: the sides in the config's players section)")
	playCmd.Flags().StringVar(&flagStrategy, "strategy", "", "Computer strategy: predictive, exact, follow")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start muted")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Stream frames to WebSocket spectators on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if flagPlayers < 0 || flagPlayers > 2 {
		fmt.Fprintf(os.Stderr, "Error: --players must be 0, 1 or 2, got %d\n", flagPlayers)
		os.Exit(1)
	}

	cfg, setup, err := loadSetup(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagStrategy != "" {
		strategy, err := pong.ParseStrategy(flagStrategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		setup.Options.Strategy = strategy
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	spk, err := audio.Open()
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
	}
	defer spk.Close()
	setup.Cues = spk

	var match *pong.Match
	if cmd.Flags().Changed("players") {
		match, err = setup.NewMatch(flagPlayers)
	} else {
		match, err = setup.NewConfiguredMatch()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	match.SetMuted(flagMute || mutePreference(store, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	opts := tui.ModelOptions{Store: store, Logger: logger}
	if flagSpectate != "" {
		opts.Spectators = startSpectators(ctx, flagSpectate, logger)
	}

	_, runErr := tui.Run(match, runtimeConfig(), opts)

	stop()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running match: %v\n", runErr)
		os.Exit(1)
	}
}

// startSpectators runs a spectator hub on addr until ctx is done.
func startSpectators(ctx context.Context, addr string, logger *log.Logger) *spectate.Hub {
	hub := spectate.NewHub(logger)
	go hub.Run(ctx)
	go func() {
		if err := spectate.ListenAndServe(ctx, addr, hub); err != nil {
			logger.Error("spectator stream stopped", "addr", addr, "err", err)
		}
	}()
	return hub
}
