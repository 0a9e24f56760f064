package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pong/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default pong.yaml",
	Long: `Print the built-in default configuration.

Config files are searched in this order:
  --config <path>
  ~/.pong/configs/pong.yaml
  ./configs/pong.yaml

A file only needs the keys it changes; everything else keeps its default.

Examples:
  pong config > my-pong.yaml
  pong config init
  pong config init ./configs/pong.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default pong.yaml",
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(_ *cobra.Command, args []string) {
	path := config.UserConfigPath()
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine home directory; pass a path")
		os.Exit(1)
	}

	if err := config.WriteDefault(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
