package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent matches",
	Long: `Display the most recent recorded matches and overall totals.
Only matches with at least one human player are recorded.

Examples:
  pong history
  pong history --limit 50
  pong history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded matches")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Match history cleared.")
		return
	}

	matches, err := store.RecentMatches(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Matches")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'pong play' to record the first one!")
		return
	}

	fmt.Printf("  %-5s  %-6s  %-5s  %-7s  %-10s  %-7s  %s\n", "#", "Winner", "Lives", "Mode", "AI", "Ticks", "Date")
	fmt.Printf("  %-5s  %-6s  %-5s  %-7s  %-10s  %-7s  %s\n", "-", "------", "-----", "----", "--", "-----", "----")

	for _, m := range matches {
		mode := "vs CPU"
		if m.Players() == 2 {
			mode = "2P"
		}
		fmt.Printf("  %-5d  %-6s  %-5s  %-7s  %-10s  %-7d  %s\n",
			m.ID,
			strings.ToUpper(m.Winner),
			fmt.Sprintf("%d-%d", m.RedLives, m.BlueLives),
			mode,
			m.Strategy,
			m.Ticks,
			m.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Red: %d  Blue: %d  Longest: %d ticks\n",
			stats.Played, stats.RedWins, stats.BlueWins, stats.LongestTicks)
	}
}
