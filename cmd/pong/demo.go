package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/platform/tui"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/spectate"
)

var (
	flagHeadless     bool
	flagDuration     time.Duration
	flagDemoSpectate string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the computer play itself",
	Long: `Run a zero-player match. Both paddles are driven by the computer and
a finished game restarts on its own unless gameplay.attract is off.

Press j/l or the arrow keys to take over a paddle mid-demo.

With --headless no terminal UI is drawn: the match runs on a timer and
is only visible to WebSocket spectators.

Examples:
  pong demo
  pong demo --headless --spectate :8080 --duration 10m
  pong demo --headless --seed 7 --duration 30s`,
	Run: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the terminal UI")
	demoCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Stop a headless demo after this long (0 = until interrupted)")
	demoCmd.Flags().StringVar(&flagDemoSpectate, "spectate", "", "Stream frames to WebSocket spectators on this address (e.g. :8080)")
}

func runDemo(cmd *cobra.Command, _ []string) {
	_, setup, err := loadSetup(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagHeadless {
		runHeadless(setup)
		return
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	match, err := setup.NewMatch(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}
	match.SetMuted(true)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	opts := tui.ModelOptions{Logger: logger}
	if flagDemoSpectate != "" {
		opts.Spectators = startSpectators(ctx, flagDemoSpectate, logger)
	}

	if _, err := tui.Run(match, runtimeConfig(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless drives a zero-player match on the scheduler, logging each
// finished game.
func runHeadless(setup tui.MatchSetup) {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	match, err := setup.NewMatch(0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if flagDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagDuration)
		defer cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var hub *spectate.Hub
	if flagDemoSpectate != "" {
		hub = startSpectators(ctx, flagDemoSpectate, logger)
	}

	games := 0
	wins := map[string]int{}
	logger.Info("demo started", "seed", match.Options().Seed, "strategy", match.Options().Strategy, "fps", match.Options().FPS)

	err = pong.Run(ctx, match, func(s pong.Snapshot) {
		if hub != nil {
			hub.Broadcast(s)
		}
		if s.Running {
			return
		}
		games++
		wins[s.Winner]++
		logger.Info("game over", "game", games, "winner", s.Winner, "ticks", s.Tick)
		if !match.Options().Attract {
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		logger.Error("demo stopped", "err", err)
		os.Exit(1)
	}

	logger.Info("demo finished",
		"games", games,
		"red", wins[pong.SideRed.String()],
		"blue", wins[pong.SideBlue.String()],
		"ticks", match.Ticks(),
		"elapsed", match.Elapsed().Round(time.Millisecond),
	)
}
