package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/audio"
	"github.com/vovakirdan/tui-pong/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start pong with a mode picker menu",
	Long: `Start pong in interactive menu mode.

Pick one, two or zero players. After a match you return to the menu;
Tab opens the match history.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start the selected mode
  Tab/h        - Match history
  Q            - Quit

Examples:
  pong menu
  pong menu --difficulty easy
  pong menu --db ./pong.db`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg, setup, err := loadSetup(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
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

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	rcfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(rcfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rcfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			goBack, err := tui.RunHistory(store, rcfg.ScreenW, rcfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			if !goBack {
				return
			}
			continue
		}

		match, err := setup.NewMatch(menuResult.Players)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating match: %v\n", err)
			return
		}
		// Demos stay quiet; the mute key still works
		match.SetMuted(menuResult.Players == 0 || mutePreference(store, cfg))

		backToMenu, err := tui.Run(match, rcfg, tui.ModelOptions{Store: store, Logger: logger})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
			return
		}
		if !backToMenu {
			return
		}
	}
}
