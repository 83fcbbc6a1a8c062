package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/config"
	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
	"github.com/vovakirdan/arcade-physics/internal/scene"
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Watch a scene in the terminal",
	Long: `Run the specified scene in real time in the terminal.

Controls:
  P/Space   - Pause / resume
  N         - Single step while paused
  D         - Toggle debug drawing
  +/-       - Speed up / slow down
  R         - Restart
  ?         - Full help
  Q/Ctrl+C  - Quit

Examples:
  arcadephys play billiards
  arcadephys play swarm --fps 30
  arcadephys play mine --config ./mine.yaml --log-file ./viewer.log`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom scene YAML")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, err := config.LoadScene(args[0], flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'arcadephys list' to see available scenes.")
		os.Exit(1)
	}

	logger, closeLog := viewerLogger()
	defer closeLog()

	if _, err := tui.Run(scene.NewRunner(cfg, logger), runtimeConfig(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
