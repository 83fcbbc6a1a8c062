package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-physics/internal/platform/tui"
	"github.com/vovakirdan/arcade-physics/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsTUI   bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `Print the newest recorded runs, optionally for a single scene.
With --tui, browse runs per scene in an interactive table.

Examples:
  arcadephys runs
  arcadephys runs billiards --limit 5
  arcadephys runs --tui`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsTUI {
		cfg := runtimeConfig()
		if _, err := tui.RunRuns(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
	}

	runs, err := store.RecentRuns(sceneID, flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println("Record one with 'arcadephys simulate <scene> --record'.")
		return
	}

	fmt.Printf("  %-5s  %-12s  %8s  %9s  %10s  %-16s  %s\n", "#", "Scene", "Steps", "Contacts", "Simulated", "Hash", "Date")
	fmt.Printf("  %-5s  %-12s  %8s  %9s  %10s  %-16s  %s\n", "-", "-----", "-----", "--------", "---------", "----", "----")
	for _, r := range runs {
		fmt.Printf("  %-5d  %-12s  %8d  %9d  %10s  %016x  %s\n",
			r.ID, r.SceneID, r.Steps, r.Contacts, r.Elapsed, r.Hash, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
